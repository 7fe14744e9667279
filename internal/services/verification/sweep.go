package verification

import (
	"context"
	"log"
)

// SweepOnce loads a batch of pending wallets, oldest first, and re-runs the
// same match-and-activate logic as Check on each. One bad wallet is logged
// and skipped; it never stalls the rest of the batch. Overlapping sweeps are
// skipped, not queued.
func (s *service) SweepOnce(ctx context.Context) (SweepStats, error) {
	if !s.sweeping.CompareAndSwap(false, true) {
		log.Println("verification sweep already running, skipping")
		return SweepStats{Skipped: true}, nil
	}
	defer s.sweeping.Store(false)

	var stats SweepStats

	batch, err := s.wallets.ListPending(sweepBatchSize)
	if err != nil {
		return stats, err
	}
	if len(batch) == 0 {
		return stats, nil
	}

	settings, err := s.settings.Get()
	if err != nil {
		return stats, err
	}

	// The whole batch matches against the same deposit-address window, so
	// fetch it once per pass.
	payments, paymentsErr := s.ledger.RecentPayments(ctx, settings.DepositAddress, paymentLookback)
	if paymentsErr != nil {
		log.Printf("sweep: failed to fetch payment window: %v", paymentsErr)
	}

	now := s.now()
	for i := range batch {
		wallet := &batch[i]
		stats.Processed++

		if wallet.ExpiredAt(now) {
			canceled, err := s.wallets.CancelIfPending(wallet.ID)
			if err != nil {
				log.Printf("sweep: failed to cancel wallet %d: %v", wallet.ID, err)
				stats.Failed++
				continue
			}
			if canceled {
				stats.Canceled++
			}
			continue
		}

		if paymentsErr != nil {
			stats.Failed++
			continue
		}

		matched, won, err := s.matchAndActivate(wallet, settings, payments)
		if err != nil {
			log.Printf("sweep: failed to verify wallet %d: %v", wallet.ID, err)
			stats.Failed++
			continue
		}
		// A matched-but-lost race means a user-triggered check already
		// verified it; nothing to do.
		if matched && won {
			stats.Verified++
		}
	}

	return stats, nil
}

// CleanupExpired hard-deletes canceled wallets past the retention window.
// Pure storage hygiene.
func (s *service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.wallets.DeleteCanceledBefore(s.now().Add(-canceledRetention))
}
