package reports

import (
	"sync"

	"github.com/berkayda/hawkeye-public/internal/domain"
)

// Store keeps the latest published report in memory for readers such as the dashboard.
type Store struct {
	mu     sync.RWMutex
	latest *domain.Report
	cycles int
}

// NewStore creates an empty report store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the latest report. Nil reports are ignored.
func (s *Store) Publish(r *domain.Report) {
	if r == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = r
	s.cycles++
}

// Latest returns the most recently published report.
func (s *Store) Latest() (*domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest, s.latest != nil
}

// Cycles returns how many reports were published since start.
func (s *Store) Cycles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cycles
}
