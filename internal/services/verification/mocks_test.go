package verification

import (
	"context"
	"time"

	"aurum/internal/ledger"
	"aurum/internal/models"
	"aurum/internal/repositories"

	"github.com/stretchr/testify/mock"
)

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByAddress(address string) (*models.Wallet, error) {
	args := m.Called(address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUser(userID uint) ([]models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) ListPending(limit int) ([]models.Wallet, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) Update(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) MarkVerified(walletID uint) (bool, error) {
	args := m.Called(walletID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepo) CancelIfPending(walletID uint) (bool, error) {
	args := m.Called(walletID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepo) DeactivateOthers(userID, keepID uint) error {
	args := m.Called(userID, keepID)
	return args.Error(0)
}

func (m *MockWalletRepo) CodeInUse(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepo) MapVerifiedByAddress(addresses []string) (map[string]uint, error) {
	args := m.Called(addresses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]uint), args.Error(1)
}

func (m *MockWalletRepo) DeleteCanceledBefore(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// ExecuteInTransaction runs the body against the same mock; transactional
// boundaries are not the mock's concern.
func (m *MockWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(m)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get() (*models.Settings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *MockSettingsRepo) Update(settings *models.Settings) error {
	args := m.Called(settings)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) AccountExists(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) RecentPayments(ctx context.Context, address string, limit int) ([]ledger.Payment, error) {
	args := m.Called(ctx, address, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}
