package verification

import "time"

// RegisterResult is what a caller needs to complete verification: the memo
// code, where to send the payment, how much, and until when.
type RegisterResult struct {
	WalletID       uint      `json:"wallet_id"`
	Status         string    `json:"status"`
	Code           string    `json:"code,omitempty"`
	DepositAddress string    `json:"deposit_address,omitempty"`
	MinAmount      float64   `json:"min_amount,omitempty"`
	ExpiresAt      time.Time `json:"expires_at,omitempty"`
}

// CheckResult reports the outcome of a verification check. A missing payment
// is a regular "not yet" result, not an error.
type CheckResult struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// SweepStats summarizes one background sweep pass.
type SweepStats struct {
	Processed int
	Verified  int
	Canceled  int
	Failed    int
	Skipped   bool
}
