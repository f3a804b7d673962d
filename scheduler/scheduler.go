package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/printcolor/api/datastore"
)

type Scheduler struct {
	InvocationRepo datastore.InvocationRepository
	Retention      time.Duration
	now            func() time.Time

	mu      sync.Mutex
	ticker  *time.Ticker
	timer   *time.Timer
	stopped bool
	done    chan bool
}

// NewScheduler prunes journal entries older than retentionDays.
func NewScheduler(repo datastore.InvocationRepository, retentionDays int) *Scheduler {
	return &Scheduler{
		InvocationRepo: repo,
		Retention:      time.Duration(retentionDays) * 24 * time.Hour,
		now:            time.Now,
		done:           make(chan bool, 1),
	}
}

// Start begins the scheduler to run at midnight every day
func (s *Scheduler) Start() {
	now := s.now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	durationUntilMidnight := nextMidnight.Sub(now)

	log.Printf("Scheduler started. Next journal pruning in %v", durationUntilMidnight)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(durationUntilMidnight, s.firstRun)
}

func (s *Scheduler) firstRun() {
	s.PruneJournal()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	// After first run, schedule to run every 24 hours
	ticker := time.NewTicker(24 * time.Hour)
	s.ticker = ticker
	go func() {
		for {
			select {
			case <-ticker.C:
				s.PruneJournal()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	select {
	case s.done <- true:
	default:
	}
	log.Println("Scheduler stopped")
}

// running reports whether the daily ticker has been started.
func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil && !s.stopped
}

// PruneJournal deletes invocations older than the retention window
func (s *Scheduler) PruneJournal() (int64, error) {
	cutoff := s.now().Add(-s.Retention)
	log.Printf("Pruning tool invocations before %s...", cutoff.Format(time.RFC3339))

	removed, err := s.InvocationRepo.DeleteBefore(cutoff)
	if err != nil {
		log.Printf("Error pruning tool invocations: %v", err)
		return 0, err
	}

	log.Printf("Pruned %d tool invocations", removed)
	return removed, nil
}
