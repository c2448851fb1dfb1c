// Package uistate keeps per-plan view state: the left pane's width share
// and whether the plan's timeline is expanded.
package uistate

import "sync"

const (
	DefaultLeftPercent = 50.0
	DefaultExpanded    = true
)

// Store is the key-value boundary the timeline views read and write.
// Reads never fail; a missing or unreadable entry yields the default.
type Store interface {
	LeftPercent(planID string) float64
	SetLeftPercent(planID string, pct float64) error
	Expanded(planID string) bool
	SetExpanded(planID string, expanded bool) error
}

// PlanState is the persisted state of one plan.
type PlanState struct {
	LeftPercent *float64 `json:"left_percent,omitempty"`
	Expanded    *bool    `json:"expanded,omitempty"`
}

func (s PlanState) leftPercent() float64 {
	if s.LeftPercent == nil {
		return DefaultLeftPercent
	}
	return *s.LeftPercent
}

func (s PlanState) expanded() bool {
	if s.Expanded == nil {
		return DefaultExpanded
	}
	return *s.Expanded
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]PlanState
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]PlanState)}
}

func (m *MemoryStore) LeftPercent(planID string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plans[planID].leftPercent()
}

func (m *MemoryStore) SetLeftPercent(planID string, pct float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.plans[planID]
	s.LeftPercent = &pct
	m.plans[planID] = s
	return nil
}

func (m *MemoryStore) Expanded(planID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plans[planID].expanded()
}

func (m *MemoryStore) SetExpanded(planID string, expanded bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.plans[planID]
	s.Expanded = &expanded
	m.plans[planID] = s
	return nil
}

// Forget drops everything stored for a plan.
func (m *MemoryStore) Forget(planID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.plans, planID)
	return nil
}
