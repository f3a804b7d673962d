package datastore

import (
	"cmp"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/printcolor/api/models"
)

// InvocationMemory is an InvocationRepository kept in process memory, used
// when no database is configured.
type InvocationMemory struct {
	mu          sync.Mutex
	invocations []models.Invocation
}

func NewInvocationMemory() *InvocationMemory {
	return &InvocationMemory{}
}

func (m *InvocationMemory) Create(inv models.Invocation) (models.Invocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations = append(m.invocations, inv)
	return inv, nil
}

func (m *InvocationMemory) Get(id string) (models.Invocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, inv := range m.invocations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invocation{}, NoRowsError{true, sql.ErrNoRows}
}

func (m *InvocationMemory) Recent(limit int) ([]models.Invocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := slices.Clone(m.invocations)
	slices.SortStableFunc(out, func(a, b models.Invocation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *InvocationMemory) DeleteBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.invocations)
	m.invocations = slices.DeleteFunc(m.invocations, func(inv models.Invocation) bool {
		return inv.CreatedAt.Before(cutoff)
	})
	return int64(before - len(m.invocations)), nil
}

func (m *InvocationMemory) UsageSince(since time.Time, limit int) ([]models.ToolUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byTool := map[string]*models.ToolUsage{}
	totals := map[string]int64{}
	for _, inv := range m.invocations {
		if inv.CreatedAt.Before(since) {
			continue
		}
		u, ok := byTool[inv.Tool]
		if !ok {
			u = &models.ToolUsage{Tool: inv.Tool}
			byTool[inv.Tool] = u
		}
		u.Calls++
		if inv.Status != models.InvocationOK {
			u.Failures++
		}
		totals[inv.Tool] += inv.DurationMS
	}

	usage := make([]models.ToolUsage, 0, len(byTool))
	for tool, u := range byTool {
		u.AvgDurationMS = float64(totals[tool]) / float64(u.Calls)
		usage = append(usage, *u)
	}
	slices.SortFunc(usage, func(a, b models.ToolUsage) int {
		if a.Calls != b.Calls {
			return b.Calls - a.Calls
		}
		return cmp.Compare(a.Tool, b.Tool)
	})
	if limit >= 0 && limit < len(usage) {
		usage = usage[:limit]
	}
	for i := range usage {
		usage[i].Rank = i + 1
	}
	return usage, nil
}
