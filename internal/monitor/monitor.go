// Package monitor drives recurring re-analysis of a configured URL. Each
// attempt carries a monotonically increasing generation number so the
// policy for overlapping completions is explicit rather than an accident
// of timing.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vitalscope/vitalscope/internal/audit"
	"github.com/vitalscope/vitalscope/internal/store"
	"github.com/vitalscope/vitalscope/pkg/analysis"
)

// Analyzer runs a performance audit for a URL. Satisfied by *audit.Client.
type Analyzer interface {
	Analyze(ctx context.Context, url string, strategy audit.Strategy) (*analysis.Entry, error)
}

// Monitor re-analyzes one URL on a fixed interval.
type Monitor struct {
	analyzer Analyzer
	store    *store.Store
	url      string
	strategy audit.Strategy
	interval time.Duration

	// DiscardStale drops a completion when a newer attempt has already
	// completed. Off by default: every completion is stored and the later
	// one simply becomes the new head (last-write-wins at the most-recent
	// position). Out-of-chronological-order entries under overlapping
	// attempts are an accepted tradeoff of that default.
	DiscardStale bool

	mu       sync.Mutex
	gen      uint64
	lastDone uint64
}

// New creates a Monitor. Interval must be positive.
func New(analyzer Analyzer, st *store.Store, url string, strategy audit.Strategy, interval time.Duration) *Monitor {
	return &Monitor{
		analyzer: analyzer,
		store:    st,
		url:      url,
		strategy: strategy,
		interval: interval,
	}
}

// Run ticks until the context is canceled. Attempts run concurrently: an
// interval shorter than a round trip produces overlapping attempts, which
// the store's prepend-based model tolerates.
func (m *Monitor) Run(ctx context.Context) {
	m.store.SetMonitoring(true)
	defer m.store.SetMonitoring(false)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Printf("monitor: re-analyzing %s every %s", m.url, m.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go func() {
				if err := m.RunOnce(ctx); err != nil && ctx.Err() == nil {
					log.Printf("monitor: analyze %s: %v", m.url, err)
				}
			}()
		}
	}
}

// RunOnce performs a single analyze-and-store attempt.
func (m *Monitor) RunOnce(ctx context.Context) error {
	gen := m.nextGeneration()

	entry, err := m.analyzer.Analyze(ctx, m.url, m.strategy)
	if err != nil {
		return err
	}

	if !m.storeCompletion(ctx, gen, entry) {
		log.Printf("monitor: discarded stale completion for %s (generation %d)", m.url, gen)
	}
	return nil
}

func (m *Monitor) nextGeneration() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

// storeCompletion applies the stale-completion policy and, when the
// completion is kept, stores the entry plus its daily trend rollup.
// Reports whether the completion was stored.
func (m *Monitor) storeCompletion(ctx context.Context, gen uint64, entry *analysis.Entry) bool {
	m.mu.Lock()
	if m.DiscardStale && gen < m.lastDone {
		m.mu.Unlock()
		return false
	}
	if gen > m.lastDone {
		m.lastDone = gen
	}
	m.mu.Unlock()

	m.store.AddEntry(ctx, *entry)
	m.store.AddHistoricalPoint(ctx, entry.Rollup())
	return true
}
