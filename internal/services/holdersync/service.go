// Package holdersync converges local balance records with the ledger's view
// of who holds each tracked token. It is the write path for WalletBalance
// rows; nothing else updates them.
package holdersync

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"aurum/internal/ledger"
	"aurum/internal/models"
	"aurum/internal/repositories"
)

// HolderPager yields pages of an asset's holders. A (nil, nil) page ends the
// walk.
type HolderPager interface {
	Next(ctx context.Context) ([]ledger.Holder, error)
	Truncated() bool
}

// HolderSource is the slice of the ledger gateway this service consumes.
type HolderSource interface {
	AssetHolders(code, issuer string) HolderPager
}

// Service walks the holder sets of all active tokens and upserts balances.
type Service interface {
	// SyncAll synchronizes every active token. A run that overlaps a
	// previous one is skipped, not queued.
	SyncAll(ctx context.Context) error
	// SyncToken synchronizes a single token.
	SyncToken(ctx context.Context, token models.Token) error
}

type service struct {
	source   HolderSource
	tokens   repositories.TokenRepository
	wallets  repositories.WalletRepository
	balances repositories.BalanceRepository

	running atomic.Bool
}

func NewService(
	source HolderSource,
	tokens repositories.TokenRepository,
	wallets repositories.WalletRepository,
	balances repositories.BalanceRepository,
) Service {
	if source == nil {
		panic("holder source is required")
	}
	if tokens == nil {
		panic("token repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	if balances == nil {
		panic("balance repository is required")
	}
	return &service{
		source:   source,
		tokens:   tokens,
		wallets:  wallets,
		balances: balances,
	}
}

func (s *service) SyncAll(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("holder sync already running, skipping")
		return nil
	}
	defer s.running.Store(false)

	tokens, err := s.tokens.ListActive()
	if err != nil {
		return err
	}

	// One bad token must not block the others.
	for _, token := range tokens {
		if err := s.SyncToken(ctx, token); err != nil {
			log.Printf("holder sync failed for %s:%s: %v", token.Code, token.Issuer, err)
		}
	}
	return nil
}

// SyncToken pages through the token's holders and upserts a balance row for
// every holder that is a verified wallet here. Each page commits on its own:
// a failure mid-walk leaves earlier pages updated and later ones stale until
// the next run, which is the accepted convergence model.
func (s *service) SyncToken(ctx context.Context, token models.Token) error {
	it := s.source.AssetHolders(token.Code, token.Issuer)

	pages := 0
	for {
		holders, err := it.Next(ctx)
		if err != nil {
			return fmt.Errorf("holder page %d: %w", pages+1, err)
		}
		if holders == nil {
			break
		}
		pages++

		if err := s.syncPage(token, holders); err != nil {
			return fmt.Errorf("holder page %d: %w", pages, err)
		}
	}

	if it.Truncated() {
		log.Printf("holder sync for %s:%s truncated by rate limiting after %d pages", token.Code, token.Issuer, pages)
	}
	return nil
}

func (s *service) syncPage(token models.Token, holders []ledger.Holder) error {
	if len(holders) == 0 {
		return nil
	}

	addresses := make([]string, 0, len(holders))
	for _, h := range holders {
		addresses = append(addresses, h.Address)
	}
	walletIDs, err := s.wallets.MapVerifiedByAddress(addresses)
	if err != nil {
		return err
	}

	balances := make([]models.WalletBalance, 0, len(holders))
	for _, h := range holders {
		walletID, ok := walletIDs[h.Address]
		if !ok {
			// Not every ledger account is a registered user.
			continue
		}
		amount, err := parseAmount(h.Balance)
		if err != nil {
			log.Printf("holder sync: skipping %s: %v", h.Address, err)
			continue
		}
		balances = append(balances, models.WalletBalance{
			WalletID: walletID,
			TokenID:  token.ID,
			Amount:   amount,
		})
	}

	return s.balances.UpsertBatch(balances)
}
