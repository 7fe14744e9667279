package repositories

import (
	"fmt"

	"aurum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository interface {
	// UpsertBatch writes one page of observed holdings in a single statement,
	// inserting new (wallet, token) pairs and overwriting amounts for
	// existing ones.
	UpsertBatch(balances []models.WalletBalance) error
	ListByWallet(walletID uint) ([]models.WalletBalance, error)
	ListByUser(userID uint) ([]models.WalletBalance, error)
}

type balanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) UpsertBatch(balances []models.WalletBalance) error {
	if len(balances) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_id"}, {Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&balances).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d balances: %w", len(balances), err)
	}
	return nil
}

func (r *balanceRepository) ListByWallet(walletID uint) ([]models.WalletBalance, error) {
	var balances []models.WalletBalance
	if err := r.db.Where("wallet_id = ?", walletID).Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return balances, nil
}

func (r *balanceRepository) ListByUser(userID uint) ([]models.WalletBalance, error) {
	var balances []models.WalletBalance
	err := r.db.
		Joins("JOIN wallets ON wallets.id = wallet_balances.wallet_id").
		Where("wallets.user_id = ? AND wallets.is_deleted = ?", userID, false).
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user balances: %w", err)
	}
	return balances, nil
}
