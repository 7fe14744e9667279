package ledger

import "errors"

var (
	// ErrRateLimited is returned after the retry budget for 429 responses is
	// exhausted and no partial results were collected.
	ErrRateLimited = errors.New("ledger: rate limited")
	// ErrBadResponse is returned for unexpected status codes or bodies that
	// fail to parse.
	ErrBadResponse = errors.New("ledger: bad response")
)
