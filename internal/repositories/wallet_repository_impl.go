package repositories

import (
	"fmt"
	"time"

	"aurum/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByAddress(address string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("address = ? AND is_deleted = ?", address, false).First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by address: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUser(userID uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := r.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at ASC").
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user wallets: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) ListPending(limit int) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := r.db.Where("verification_status = ? AND is_deleted = ?", models.VerificationPending, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending wallets: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) MarkVerified(walletID uint) (bool, error) {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND verification_status = ?", walletID, models.VerificationPending).
		Updates(map[string]interface{}{
			"verification_status": models.VerificationSuccess,
			"is_active":           true,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark wallet verified: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *walletRepository) CancelIfPending(walletID uint) (bool, error) {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND verification_status = ?", walletID, models.VerificationPending).
		Update("verification_status", models.VerificationCanceled)
	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel wallet: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *walletRepository) DeactivateOthers(userID, keepID uint) error {
	err := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND id <> ? AND is_deleted = ?", userID, keepID, false).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate wallets: %w", err)
	}
	return nil
}

func (r *walletRepository) CodeInUse(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Wallet{}).
		Where("verification_code = ? AND verification_status = ?", code, models.VerificationPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check verification code: %w", err)
	}
	return count > 0, nil
}

func (r *walletRepository) MapVerifiedByAddress(addresses []string) (map[string]uint, error) {
	if len(addresses) == 0 {
		return map[string]uint{}, nil
	}

	var wallets []models.Wallet
	err := r.db.Select("id", "address").
		Where("address IN ? AND verification_status = ? AND is_deleted = ?",
			addresses, models.VerificationSuccess, false).
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wallet addresses: %w", err)
	}

	out := make(map[string]uint, len(wallets))
	for _, w := range wallets {
		out[w.Address] = w.ID
	}
	return out, nil
}

func (r *walletRepository) DeleteCanceledBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("verification_status = ? AND updated_at < ?",
		models.VerificationCanceled, cutoff).
		Delete(&models.Wallet{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete canceled wallets: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
