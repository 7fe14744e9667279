package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sync/atomic"
	"time"

	"aurum/internal/ledger"
	"aurum/internal/models"
	"aurum/internal/repositories"
)

type service struct {
	wallets  repositories.WalletRepository
	settings repositories.SettingsRepository
	ledger   LedgerClient

	sweeping atomic.Bool
	now      func() time.Time
}

// NewService creates a new verification service.
func NewService(
	wallets repositories.WalletRepository,
	settings repositories.SettingsRepository,
	ledgerClient LedgerClient,
) Service {
	if wallets == nil {
		panic("wallet repository is required")
	}
	if settings == nil {
		panic("settings repository is required")
	}
	if ledgerClient == nil {
		panic("ledger client is required")
	}
	return &service{
		wallets:  wallets,
		settings: settings,
		ledger:   ledgerClient,
		now:      time.Now,
	}
}

func (s *service) Register(ctx context.Context, userID uint, address string) (*RegisterResult, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	existing, err := s.wallets.GetByAddress(address)
	if err != nil && !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.UserID != userID {
			return nil, ErrAlreadyBound
		}
		switch existing.VerificationStatus {
		case models.VerificationSuccess:
			// Re-registering a verified wallet just makes it the active one.
			if err := s.activate(existing); err != nil {
				return nil, err
			}
			return &RegisterResult{
				WalletID: existing.ID,
				Status:   models.VerificationSuccess,
			}, nil
		case models.VerificationPending:
			if !existing.ExpiredAt(s.now()) {
				// Code still live; hand the same one back.
				return s.registerResult(existing, settings), nil
			}
			// Stale code: issue a fresh one on the same record.
			return s.reissue(existing, settings)
		default:
			// Canceled: a fresh registration on the same record.
			return s.reissue(existing, settings)
		}
	}

	exists, err := s.ledger.AccountExists(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !exists {
		return nil, ErrAccountNotFound
	}

	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}
	wallet := &models.Wallet{
		UserID:                userID,
		Address:               address,
		VerificationStatus:    models.VerificationPending,
		VerificationCode:      code,
		VerificationExpiresAt: s.now().Add(verificationWindow),
	}
	if err := s.wallets.Create(wallet); err != nil {
		return nil, err
	}
	return s.registerResult(wallet, settings), nil
}

// reissue puts an expired or canceled record back into pending with a fresh
// code. Allowed only from Register; it is the "fresh register" transition.
func (s *service) reissue(wallet *models.Wallet, settings *models.Settings) (*RegisterResult, error) {
	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}
	wallet.VerificationStatus = models.VerificationPending
	wallet.VerificationCode = code
	wallet.VerificationExpiresAt = s.now().Add(verificationWindow)
	wallet.VerificationAttempts = 0
	if err := s.wallets.Update(wallet); err != nil {
		return nil, err
	}
	return s.registerResult(wallet, settings), nil
}

func (s *service) registerResult(wallet *models.Wallet, settings *models.Settings) *RegisterResult {
	return &RegisterResult{
		WalletID:       wallet.ID,
		Status:         wallet.VerificationStatus,
		Code:           wallet.VerificationCode,
		DepositAddress: settings.DepositAddress,
		MinAmount:      settings.MinPayment,
		ExpiresAt:      wallet.VerificationExpiresAt,
	}
}

func (s *service) Check(ctx context.Context, userID, walletID uint) (*CheckResult, error) {
	wallet, err := s.ownedWallet(userID, walletID)
	if err != nil {
		return nil, err
	}

	switch wallet.VerificationStatus {
	case models.VerificationSuccess:
		return &CheckResult{
			Verified: true,
			Status:   models.VerificationSuccess,
			Message:  "wallet already verified",
		}, nil
	case models.VerificationCanceled:
		return nil, ErrNotPending
	}

	if wallet.ExpiredAt(s.now()) {
		if _, err := s.wallets.CancelIfPending(wallet.ID); err != nil {
			return nil, err
		}
		return nil, ErrExpired
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	payments, err := s.ledger.RecentPayments(ctx, settings.DepositAddress, paymentLookback)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	matched, won, err := s.matchAndActivate(wallet, settings, payments)
	if err != nil {
		return nil, err
	}
	if !matched {
		wallet.VerificationAttempts++
		if err := s.wallets.Update(wallet); err != nil {
			log.Printf("failed to record verification attempt for wallet %d: %v", wallet.ID, err)
		}
		return &CheckResult{
			Verified: false,
			Status:   models.VerificationPending,
			Message:  "payment not received yet",
		}, nil
	}

	msg := "wallet verified"
	if !won {
		// A concurrent check got there first; same outcome for the caller.
		msg = "wallet already verified"
	}
	return &CheckResult{
		Verified: true,
		Status:   models.VerificationSuccess,
		Message:  msg,
	}, nil
}

// matchAndActivate is the shared core of Check and SweepOnce. When the window
// contains a qualifying payment it deactivates the user's other wallets and
// flips this one to verified-and-active, all in one transaction. The flip is
// conditional on the row still being pending; won=false means a concurrent
// path already handled it.
func (s *service) matchAndActivate(wallet *models.Wallet, settings *models.Settings, payments []ledger.Payment) (matched, won bool, err error) {
	asset := ledger.Asset{
		Code:   settings.PaymentAssetCode,
		Issuer: settings.PaymentAssetIssuer,
	}
	if !MatchPayment(payments, wallet.Address, settings.DepositAddress, asset, wallet.VerificationCode, settings.MinPayment) {
		return false, false, nil
	}

	err = s.wallets.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		ok, err := tx.MarkVerified(wallet.ID)
		if err != nil {
			return err
		}
		won = ok
		if !ok {
			return nil
		}
		return tx.DeactivateOthers(wallet.UserID, wallet.ID)
	})
	if err != nil {
		return true, false, err
	}
	return true, won, nil
}

// activate makes the wallet the user's single active one.
func (s *service) activate(wallet *models.Wallet) error {
	return s.wallets.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		if err := tx.DeactivateOthers(wallet.UserID, wallet.ID); err != nil {
			return err
		}
		wallet.IsActive = true
		return tx.Update(wallet)
	})
}

func (s *service) ListWallets(ctx context.Context, userID uint) ([]models.Wallet, error) {
	return s.wallets.GetByUser(userID)
}

func (s *service) Delete(ctx context.Context, userID, walletID uint) error {
	wallet, err := s.ownedWallet(userID, walletID)
	if err != nil {
		return err
	}
	wallet.IsDeleted = true
	wallet.IsActive = false
	return s.wallets.Update(wallet)
}

func (s *service) Restore(ctx context.Context, userID, walletID uint) error {
	wallet, err := s.wallets.GetByID(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return ErrWalletNotFound
		}
		return err
	}
	if wallet.UserID != userID {
		return ErrWalletNotFound
	}
	if !wallet.IsDeleted {
		return nil
	}
	if wallet.VerificationStatus != models.VerificationSuccess {
		return ErrNotVerified
	}
	wallet.IsDeleted = false
	return s.wallets.Update(wallet)
}

func (s *service) SetActive(ctx context.Context, userID, walletID uint) error {
	wallet, err := s.ownedWallet(userID, walletID)
	if err != nil {
		return err
	}
	if wallet.VerificationStatus != models.VerificationSuccess {
		return ErrNotVerified
	}
	return s.activate(wallet)
}

// ownedWallet fetches a wallet and checks it belongs to the user and is not
// deleted. Someone else's wallet looks the same as a missing one.
func (s *service) ownedWallet(userID, walletID uint) (*models.Wallet, error) {
	wallet, err := s.wallets.GetByID(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	if wallet.UserID != userID || wallet.IsDeleted {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

// uniqueCode generates a memo-sized verification code and re-rolls while a
// live pending wallet already carries it.
func (s *service) uniqueCode() (string, error) {
	for i := 0; i < codeRerolls; i++ {
		code, err := newVerificationCode(s.now())
		if err != nil {
			return "", err
		}
		inUse, err := s.wallets.CodeInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique verification code")
}

// newVerificationCode builds "v<unix-ts><6 random digits>": unique enough to
// disambiguate concurrent registrations, and short enough for a 28-byte memo.
func newVerificationCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("v%d%06d", now.Unix(), n.Int64()), nil
}
