package uistate

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore persists plan state as one small JSON document per plan
// under a base directory.
type DiskStore struct {
	mu sync.Mutex
	d  *diskv.Diskv
}

// NewDiskStore opens (or lazily creates) a DiskStore rooted at basePath.
func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    planKeyTransform,
		CacheSizeMax: 64 * 1024,
	})}
}

// planKeyTransform shards keys by their first two characters so a large
// number of plans does not end up in a single directory.
func planKeyTransform(key string) []string {
	if len(key) < 2 {
		return []string{}
	}
	return []string{strings.ToLower(key[:2])}
}

func (s *DiskStore) load(planID string) PlanState {
	var st PlanState
	if !s.d.Has(planID) {
		return st
	}
	raw, err := s.d.Read(planID)
	if err != nil {
		return st
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return PlanState{}
	}
	return st
}

func (s *DiskStore) update(planID string, fn func(*PlanState)) error {
	if planID == "" {
		return fmt.Errorf("plan ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load(planID)
	fn(&st)
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	if err := s.d.Write(planID, raw); err != nil {
		return fmt.Errorf("writing ui state for %s: %w", planID, err)
	}
	return nil
}

func (s *DiskStore) LeftPercent(planID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(planID).leftPercent()
}

func (s *DiskStore) SetLeftPercent(planID string, pct float64) error {
	return s.update(planID, func(st *PlanState) { st.LeftPercent = &pct })
}

func (s *DiskStore) Expanded(planID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(planID).expanded()
}

func (s *DiskStore) SetExpanded(planID string, expanded bool) error {
	return s.update(planID, func(st *PlanState) { st.Expanded = &expanded })
}

// Forget removes all stored state for a plan.
func (s *DiskStore) Forget(planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.d.Has(planID) {
		return nil
	}
	if err := s.d.Erase(planID); err != nil {
		return fmt.Errorf("erasing ui state for %s: %w", planID, err)
	}
	return nil
}
