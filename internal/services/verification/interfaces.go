package verification

import (
	"context"

	"aurum/internal/ledger"
	"aurum/internal/models"
)

// LedgerClient is the slice of the ledger gateway this service consumes.
type LedgerClient interface {
	AccountExists(ctx context.Context, address string) (bool, error)
	RecentPayments(ctx context.Context, address string, limit int) ([]ledger.Payment, error)
}

// Service drives wallet registration and verification.
type Service interface {
	// Register claims an address for a user and issues a verification code.
	// Re-registering is idempotent while a code is still live.
	Register(ctx context.Context, userID uint, address string) (*RegisterResult, error)
	// Check looks for the verification payment now and flips the wallet to
	// verified when found.
	Check(ctx context.Context, userID, walletID uint) (*CheckResult, error)

	ListWallets(ctx context.Context, userID uint) ([]models.Wallet, error)
	Delete(ctx context.Context, userID, walletID uint) error
	Restore(ctx context.Context, userID, walletID uint) error
	SetActive(ctx context.Context, userID, walletID uint) error

	// SweepOnce re-evaluates a batch of pending wallets; used by the
	// scheduler.
	SweepOnce(ctx context.Context) (SweepStats, error)
	// CleanupExpired deletes canceled wallets past the retention window.
	CleanupExpired(ctx context.Context) (int64, error)
}
