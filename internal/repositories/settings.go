package repositories

import (
	"fmt"

	"aurum/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*models.Settings, error)
	Update(settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row. The row is created by the seed
// command; an unseeded database is an error, not a default.
func (r *settingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("settings not seeded: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Update(settings *models.Settings) error {
	if err := r.db.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
