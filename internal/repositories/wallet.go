package repositories

import (
	"time"

	"aurum/internal/models"
)

// WalletRepository is the record-store contract for wallet rows. The two
// conditional updates (MarkVerified, CancelIfPending) are the compare-and-swap
// primitives the verification engine relies on: they only apply when the row
// is still pending, and report whether they won the race.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByAddress(address string) (*models.Wallet, error)
	GetByUser(userID uint) ([]models.Wallet, error)
	ListPending(limit int) ([]models.Wallet, error)
	Update(wallet *models.Wallet) error

	// MarkVerified flips a still-pending wallet to success and activates it.
	// Returns false when the wallet was no longer pending.
	MarkVerified(walletID uint) (bool, error)
	// CancelIfPending flips a still-pending wallet to canceled. Returns false
	// when the wallet was no longer pending.
	CancelIfPending(walletID uint) (bool, error)
	// DeactivateOthers clears the active flag on every other non-deleted
	// wallet of the user.
	DeactivateOthers(userID, keepID uint) error

	CodeInUse(code string) (bool, error)
	// MapVerifiedByAddress resolves ledger addresses to wallet ids for
	// verified, non-deleted wallets. Unknown addresses are simply absent from
	// the result.
	MapVerifiedByAddress(addresses []string) (map[string]uint, error)
	DeleteCanceledBefore(cutoff time.Time) (int64, error)

	ExecuteInTransaction(fn func(WalletRepository) error) error
}
