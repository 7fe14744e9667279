package repositories

import (
	"fmt"

	"aurum/internal/models"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(token *models.Token) error
	GetByID(id uint) (*models.Token, error)
	ListActive() ([]models.Token, error)
	List() ([]models.Token, error)
	Update(token *models.Token) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *models.Token) error {
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

func (r *tokenRepository) GetByID(id uint) (*models.Token, error) {
	var token models.Token
	if err := r.db.First(&token, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

func (r *tokenRepository) ListActive() ([]models.Token, error) {
	var tokens []models.Token
	if err := r.db.Where("is_active = ?", true).Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list active tokens: %w", err)
	}
	return tokens, nil
}

func (r *tokenRepository) List() ([]models.Token, error) {
	var tokens []models.Token
	if err := r.db.Order("id ASC").Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

func (r *tokenRepository) Update(token *models.Token) error {
	if err := r.db.Save(token).Error; err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}
	return nil
}
