package verification

import "time"

const (
	// verificationWindow is how long a code stays valid after registration.
	verificationWindow = 15 * time.Minute
	// paymentLookback is the fixed window of recent deposit-address payments
	// scanned for a match.
	paymentLookback = 20
	// sweepBatchSize bounds how many pending wallets one sweep pass handles.
	sweepBatchSize = 100
	// canceledRetention is how long canceled wallets are kept before cleanup
	// deletes them.
	canceledRetention = time.Hour
	// codeRerolls bounds how often a colliding verification code is re-rolled.
	codeRerolls = 5
)
