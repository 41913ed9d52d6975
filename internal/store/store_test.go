package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vitalscope/vitalscope/pkg/analysis"
	"github.com/vitalscope/vitalscope/pkg/vitals"
)

// memRepo is an in-memory Repository for exercising persistence behavior.
type memRepo struct {
	saved   *analysis.State
	saves   int
	loads   int
	loadErr error
	saveErr error
}

func (m *memRepo) Save(ctx context.Context, state *analysis.State) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = state.Clone()
	return nil
}

func (m *memRepo) Load(ctx context.Context) (*analysis.State, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, nil
	}
	return m.saved.Clone(), nil
}

func draftEntry(url string) analysis.Entry {
	return analysis.Entry{
		URL:          url,
		Metrics:      vitals.MetricSet{vitals.LCP: 2000, vitals.CLS: 0.05},
		OverallScore: 100,
	}
}

func TestAddEntryAssignsID(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	draft := draftEntry("https://example.com")
	draft.ID = "caller-supplied"

	got := s.AddEntry(ctx, draft)
	if got.ID == "" || got.ID == "caller-supplied" {
		t.Errorf("AddEntry id = %q, want store-assigned id", got.ID)
	}
	if got.Timestamp.IsZero() {
		t.Error("AddEntry left timestamp unset")
	}
}

func TestAddEntryIDsNeverCollide(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		e := s.AddEntry(ctx, draftEntry("https://example.com"))
		if seen[e.ID] {
			t.Fatalf("duplicate id after %d inserts: %s", i+1, e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddEntryBoundAndOrder(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	var last analysis.Entry
	for i := 1; i <= analysis.MaxEntries+1; i++ {
		last = s.AddEntry(ctx, draftEntry(fmt.Sprintf("https://example.com/%d", i)))
	}

	entries := s.Entries()
	if len(entries) != analysis.MaxEntries {
		t.Fatalf("entries = %d, want %d", len(entries), analysis.MaxEntries)
	}
	if entries[0].ID != last.ID {
		t.Errorf("head = %s, want the %dth inserted entry %s", entries[0].ID, analysis.MaxEntries+1, last.ID)
	}
	if entries[0].URL != fmt.Sprintf("https://example.com/%d", analysis.MaxEntries+1) {
		t.Errorf("head url = %s", entries[0].URL)
	}
	// The very first insert was the one evicted.
	for _, e := range entries {
		if e.URL == "https://example.com/1" {
			t.Error("oldest entry was not evicted")
		}
	}
}

func TestRemoveEntry(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	a := s.AddEntry(ctx, draftEntry("https://a.example"))
	b := s.AddEntry(ctx, draftEntry("https://b.example"))

	s.RemoveEntry(ctx, a.ID)
	entries := s.Entries()
	if len(entries) != 1 || entries[0].ID != b.ID {
		t.Errorf("after remove: %+v, want only %s", entries, b.ID)
	}
}

func TestRemoveEntryMissingIsNoop(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	s.AddEntry(ctx, draftEntry("https://a.example"))
	s.AddEntry(ctx, draftEntry("https://b.example"))
	before := s.Entries()

	s.RemoveEntry(ctx, "no-such-id")

	after := s.Entries()
	if len(after) != len(before) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Errorf("order changed at %d: %s -> %s", i, before[i].ID, after[i].ID)
		}
	}
}

func TestClearEntriesKeepsHistory(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	s.AddEntry(ctx, draftEntry("https://example.com"))
	s.AddHistoricalPoint(ctx, analysis.HistoricalPoint{LCP: 2000, Score: 90})

	s.ClearEntries(ctx)

	if got := s.Entries(); len(got) != 0 {
		t.Errorf("entries after clear = %d, want 0", len(got))
	}
	if got := s.History(); len(got) != 1 {
		t.Errorf("history after clear = %d, want 1 (untouched)", len(got))
	}
}

func TestAddHistoricalPointStampsDateAndBounds(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < analysis.MaxHistory+1; i++ {
		s.now = func() time.Time { return day.AddDate(0, 0, i) }
		s.AddHistoricalPoint(ctx, analysis.HistoricalPoint{Score: i})
	}

	history := s.History()
	if len(history) != analysis.MaxHistory {
		t.Fatalf("history = %d, want %d", len(history), analysis.MaxHistory)
	}
	// Oldest (score 0, day 0) dropped first.
	if history[0].Score != 1 {
		t.Errorf("oldest kept point score = %d, want 1", history[0].Score)
	}
	if history[0].Date != "2026-08-02" {
		t.Errorf("oldest kept date = %s, want 2026-08-02", history[0].Date)
	}
	if last := history[len(history)-1]; last.Score != analysis.MaxHistory {
		t.Errorf("newest point score = %d, want %d", last.Score, analysis.MaxHistory)
	}
}

func TestAddHistoricalPointSameDayAppends(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	s.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	s.AddHistoricalPoint(ctx, analysis.HistoricalPoint{Score: 80})
	s.AddHistoricalPoint(ctx, analysis.HistoricalPoint{Score: 85})

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("same-day points = %d, want 2 (append-only, no dedup)", len(history))
	}
	if history[0].Date != history[1].Date {
		t.Errorf("dates differ: %s vs %s", history[0].Date, history[1].Date)
	}
}

func TestSeedSampleData(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	if !s.SeedSampleData(ctx) {
		t.Fatal("seeding an empty store should happen")
	}
	if len(s.Entries()) == 0 || len(s.History()) == 0 {
		t.Fatal("seeding left sequences empty")
	}

	before := len(s.Entries())
	if s.SeedSampleData(ctx) {
		t.Error("seeding a non-empty store should be a no-op")
	}
	if got := len(s.Entries()); got != before {
		t.Errorf("entries changed on no-op seed: %d -> %d", before, got)
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	repo := &memRepo{}
	ctx := context.Background()

	first := New(repo)
	first.Hydrate(ctx)
	added := first.AddEntry(ctx, draftEntry("https://example.com"))
	first.AddHistoricalPoint(ctx, analysis.HistoricalPoint{LCP: 2000, Score: 90})

	// Simulate reload in a fresh process.
	second := New(repo)
	if second.Hydrated() {
		t.Fatal("hydrated before Hydrate")
	}
	second.Hydrate(ctx)
	if !second.Hydrated() {
		t.Fatal("not hydrated after Hydrate")
	}

	entries := second.Entries()
	if len(entries) != 1 || entries[0].ID != added.ID {
		t.Errorf("rehydrated entries = %+v, want the persisted entry %s", entries, added.ID)
	}
	if got := second.History(); len(got) != 1 {
		t.Errorf("rehydrated history = %d points, want 1", len(got))
	}

	// Second Hydrate is a no-op: no second load.
	loads := repo.loads
	second.Hydrate(ctx)
	if repo.loads != loads {
		t.Error("second Hydrate hit the repository again")
	}
}

func TestHydrateEmptySnapshotStillFlips(t *testing.T) {
	s := New(&memRepo{})
	s.Hydrate(context.Background())
	if !s.Hydrated() {
		t.Fatal("hydrated flag must flip even when the snapshot is absent")
	}
	if got := s.Entries(); len(got) != 0 {
		t.Errorf("entries = %d, want 0", len(got))
	}
}

func TestHydrateLoadErrorDegradesToEmpty(t *testing.T) {
	s := New(&memRepo{loadErr: errors.New("quota exceeded")})
	s.Hydrate(context.Background())
	if !s.Hydrated() {
		t.Fatal("hydrated flag must flip on load failure")
	}
	if got := s.Entries(); len(got) != 0 {
		t.Errorf("entries = %d, want 0", len(got))
	}
}

func TestPersistFailureDoesNotFailMutation(t *testing.T) {
	repo := &memRepo{saveErr: errors.New("disk full")}
	s := New(repo)
	ctx := context.Background()

	e := s.AddEntry(ctx, draftEntry("https://example.com"))
	if e.ID == "" {
		t.Fatal("mutation failed alongside persistence")
	}
	if got := s.Entries(); len(got) != 1 {
		t.Errorf("in-memory entries = %d, want 1 despite save failure", len(got))
	}
}

func TestMutationsPersist(t *testing.T) {
	repo := &memRepo{}
	s := New(repo)
	ctx := context.Background()

	s.AddEntry(ctx, draftEntry("https://example.com"))
	if repo.saves != 1 {
		t.Errorf("saves after AddEntry = %d, want 1", repo.saves)
	}
	s.ClearEntries(ctx)
	if repo.saves != 2 {
		t.Errorf("saves after ClearEntries = %d, want 2", repo.saves)
	}
	if repo.saved == nil || len(repo.saved.Entries) != 0 {
		t.Errorf("persisted state = %+v, want empty entries", repo.saved)
	}
}

func TestTransientFlags(t *testing.T) {
	s := New(nil)

	s.SetMonitoring(true)
	if !s.Monitoring() {
		t.Error("monitoring flag not set")
	}
	s.SetMonitoring(false)
	if s.Monitoring() {
		t.Error("monitoring flag not cleared")
	}

	s.SetCurrentURL("https://example.com")
	if got := s.CurrentURL(); got != "https://example.com" {
		t.Errorf("current url = %q", got)
	}
}

func TestReadersGetCopies(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	s.AddEntry(ctx, draftEntry("https://example.com"))

	entries := s.Entries()
	entries[0].Metrics[vitals.LCP] = -1

	fresh := s.Entries()
	if fresh[0].Metrics[vitals.LCP] == -1 {
		t.Error("reader mutation leaked into store state")
	}
}
