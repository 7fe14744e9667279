package verification

import "errors"

// Service errors. These are user-facing outcomes, not internal failures: the
// handler layer maps them onto responses.
var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrAccountNotFound = errors.New("address not found on ledger")
	ErrAlreadyBound    = errors.New("address already claimed by another user")
	ErrExpired         = errors.New("verification window expired")
	ErrNotPending      = errors.New("wallet is not awaiting verification")
	ErrNotVerified     = errors.New("only verified wallets can be used here")
)
