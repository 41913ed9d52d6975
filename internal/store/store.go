// Package store owns the single in-memory analysis state for the process
// lifetime and exposes the mutation operations the UI layers call.
// Persistence happens as an internal side effect after each mutation; a
// failing snapshot write is logged and never fails the mutation, because
// durable storage is a cache, not the source of truth for the running
// session.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vitalscope/vitalscope/internal/persist"
	"github.com/vitalscope/vitalscope/pkg/analysis"
)

// Store holds the bounded, ordered analysis state. All operations are safe
// for concurrent use; readers always observe a fully-updated state.
type Store struct {
	mu   sync.RWMutex
	repo persist.Repository // nil disables persistence

	state      analysis.State
	hydrated   bool
	monitoring bool
	currentURL string

	now   func() time.Time
	newID func() string
}

// New creates a Store backed by the given repository. A nil repository is
// valid and keeps the store purely in-memory.
func New(repo persist.Repository) *Store {
	return &Store{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Hydrate restores state from the durable snapshot. It is called once at
// startup; subsequent calls are no-ops. Loss or corruption of the snapshot
// degrades to an empty state, never an error: the hydrated flag flips to
// true exactly once either way.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}

	if s.repo != nil {
		loaded, err := s.repo.Load(ctx)
		switch {
		case err != nil:
			log.Printf("store: snapshot load failed, starting empty: %v", err)
		case loaded != nil:
			s.state = *loaded.Clone()
		}
	}
	s.hydrated = true
}

// Hydrated reports whether the durable snapshot has finished loading. UI
// gates "real data vs loading placeholder" on this flag.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// AddEntry assigns a fresh id to the draft, prepends it to the entries
// sequence and truncates to the most recent MaxEntries. Any caller-supplied
// id is discarded: the store owns identity assignment. Returns the stored
// entry.
func (s *Store) AddEntry(ctx context.Context, draft analysis.Entry) analysis.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := draft.Clone()
	entry.ID = s.newID()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	s.state.Entries = append([]analysis.Entry{entry}, s.state.Entries...)
	if len(s.state.Entries) > analysis.MaxEntries {
		s.state.Entries = s.state.Entries[:analysis.MaxEntries]
	}

	s.persistLocked(ctx)
	return entry.Clone()
}

// RemoveEntry removes the entry with the matching id; a missing id is a
// no-op, not an error.
func (s *Store) RemoveEntry(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.state.Entries {
		if e.ID == id {
			s.state.Entries = append(s.state.Entries[:i], s.state.Entries[i+1:]...)
			s.persistLocked(ctx)
			return
		}
	}
}

// ClearEntries empties the entries sequence. Historical data is untouched.
func (s *Store) ClearEntries(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Entries = nil
	s.persistLocked(ctx)
}

// AddHistoricalPoint stamps the draft with the current UTC calendar day,
// appends it and truncates to the most recent MaxHistory points, oldest
// dropped first. Same-day points are appended, never merged: repeated
// audits on one day each produce their own point.
func (s *Store) AddHistoricalPoint(ctx context.Context, draft analysis.HistoricalPoint) analysis.HistoricalPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	point := draft
	point.Date = s.now().UTC().Format("2006-01-02")

	s.state.History = append(s.state.History, point)
	if len(s.state.History) > analysis.MaxHistory {
		s.state.History = s.state.History[len(s.state.History)-analysis.MaxHistory:]
	}

	s.persistLocked(ctx)
	return point
}

// SeedSampleData populates entries and history with the fixed
// demonstration dataset, but only when the entries sequence is empty.
// Returns whether seeding happened.
func (s *Store) SeedSampleData(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Entries) > 0 {
		return false
	}

	s.state = *analysis.SampleState()
	s.persistLocked(ctx)
	return true
}

// SetMonitoring sets the transient monitoring flag.
func (s *Store) SetMonitoring(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitoring = on
}

// Monitoring reports the transient monitoring flag.
func (s *Store) Monitoring() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monitoring
}

// SetCurrentURL sets the transient current-url field. No validation.
func (s *Store) SetCurrentURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentURL = url
}

// CurrentURL reports the transient current-url field.
func (s *Store) CurrentURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentURL
}

// Entries returns a copy of the entries sequence, newest first.
func (s *Store) Entries() []analysis.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]analysis.Entry, len(s.state.Entries))
	for i := range s.state.Entries {
		out[i] = s.state.Entries[i].Clone()
	}
	return out
}

// Entry returns the entry with the given id, if present.
func (s *Store) Entry(id string) (analysis.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.state.Entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return analysis.Entry{}, false
}

// History returns a copy of the historical points, date ascending.
func (s *Store) History() []analysis.HistoricalPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]analysis.HistoricalPoint, len(s.state.History))
	copy(out, s.state.History)
	return out
}

// State returns a deep copy of the whole state.
func (s *Store) State() *analysis.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// persistLocked writes the snapshot. Callers hold the write lock. Write
// failures keep the in-memory state authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, s.state.Clone()); err != nil {
		log.Printf("store: snapshot save failed, in-memory state unaffected: %v", err)
	}
}
