// Package scheduler drives the background passes on fixed intervals: the
// verification sweep, the holder synchronization, and the canceled-wallet
// cleanup. Cadence never backs off dynamically; retry behavior lives inside
// the ledger gateway. The services carry their own overlap guards, so a tick
// that fires while the previous run is still going is simply skipped.
package scheduler

import (
	"context"
	"log"
	"time"

	"aurum/internal/services/holdersync"
	"aurum/internal/services/verification"

	"github.com/go-co-op/gocron/v2"
)

type Config struct {
	SweepInterval   time.Duration
	SyncInterval    time.Duration
	CleanupInterval time.Duration
}

type Scheduler struct {
	scheduler gocron.Scheduler
}

// New builds the job set. Start must be called to begin ticking.
func New(verifier verification.Service, syncer holdersync.Service, cfg Config) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(cfg.SweepInterval),
		gocron.NewTask(func() {
			stats, err := verifier.SweepOnce(context.Background())
			if err != nil {
				log.Printf("[scheduler] verification sweep failed: %v", err)
				return
			}
			if stats.Skipped || stats.Processed == 0 {
				return
			}
			log.Printf("[scheduler] sweep: processed=%d verified=%d canceled=%d failed=%d",
				stats.Processed, stats.Verified, stats.Canceled, stats.Failed)
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(cfg.SyncInterval),
		gocron.NewTask(func() {
			if err := syncer.SyncAll(context.Background()); err != nil {
				log.Printf("[scheduler] holder sync failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(cfg.CleanupInterval),
		gocron.NewTask(func() {
			deleted, err := verifier.CleanupExpired(context.Background())
			if err != nil {
				log.Printf("[scheduler] cleanup failed: %v", err)
				return
			}
			if deleted > 0 {
				log.Printf("[scheduler] cleanup: removed %d canceled wallets", deleted)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: s}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown stops scheduling new runs; in-flight runs finish on their own.
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
