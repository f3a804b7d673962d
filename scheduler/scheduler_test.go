package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/printcolor/api/datastore"
	"github.com/printcolor/api/models"
)

func TestPruneJournal(t *testing.T) {
	now := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	repo := datastore.NewInvocationMemory()
	for _, age := range []time.Duration{0, 10 * 24 * time.Hour, 31 * 24 * time.Hour, 90 * 24 * time.Hour} {
		repo.Create(models.Invocation{ID: age.String(), Tool: "rgb_to_hex", Status: models.InvocationOK, CreatedAt: now.Add(-age)})
	}

	s := NewScheduler(repo, 30)
	s.now = func() time.Time { return now }

	removed, err := s.PruneJournal()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed %d, want 2", removed)
	}
	left, _ := repo.Recent(10)
	if len(left) != 2 {
		t.Errorf("left %d invocations", len(left))
	}
}

type failingRepo struct {
	datastore.InvocationRepository
}

func (failingRepo) DeleteBefore(time.Time) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestPruneJournalError(t *testing.T) {
	s := NewScheduler(failingRepo{}, 30)
	if _, err := s.PruneJournal(); err == nil {
		t.Fatal("expected error")
	}
}

func TestStopBeforeFirstRun(t *testing.T) {
	s := NewScheduler(datastore.NewInvocationMemory(), 30)
	s.Start()
	s.Stop()
	s.Stop()
}

type countingRepo struct {
	*datastore.InvocationMemory
	pruned chan struct{}
}

func (r *countingRepo) DeleteBefore(cutoff time.Time) (int64, error) {
	select {
	case r.pruned <- struct{}{}:
	default:
	}
	return r.InvocationMemory.DeleteBefore(cutoff)
}

func justBeforeMidnight() time.Time {
	return time.Date(2026, 5, 19, 23, 59, 59, int(995*time.Millisecond), time.UTC)
}

func TestStartRunsAtMidnightThenTicks(t *testing.T) {
	repo := &countingRepo{InvocationMemory: datastore.NewInvocationMemory(), pruned: make(chan struct{}, 1)}
	s := NewScheduler(repo, 30)
	s.now = justBeforeMidnight

	s.Start()
	select {
	case <-repo.pruned:
	case <-time.After(5 * time.Second):
		t.Fatal("journal was not pruned at midnight")
	}

	deadline := time.Now().Add(5 * time.Second)
	for !s.running() {
		if time.Now().After(deadline) {
			t.Fatal("daily ticker never started")
		}
		time.Sleep(time.Millisecond)
	}
	s.Stop()
	if s.running() {
		t.Error("ticker still running after Stop")
	}
}

func TestStopCancelsPendingRun(t *testing.T) {
	repo := &countingRepo{InvocationMemory: datastore.NewInvocationMemory(), pruned: make(chan struct{}, 1)}
	s := NewScheduler(repo, 30)
	s.now = justBeforeMidnight

	s.Start()
	s.Stop()
	time.Sleep(50 * time.Millisecond)
	if s.running() {
		t.Error("ticker started after Stop")
	}
}
