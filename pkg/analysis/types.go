// Package analysis defines the analysis data model: completed performance
// entries, resource timings, daily trend rollups, and the bounded state
// they live in.
package analysis

import (
	"time"

	"github.com/vitalscope/vitalscope/pkg/vitals"
)

// Capacity bounds for the state. Oldest items are evicted silently once a
// bound is exceeded.
const (
	MaxEntries = 100
	MaxHistory = 90
)

// InitiatorType categorizes what triggered a sub-resource load.
type InitiatorType string

const (
	InitiatorScript InitiatorType = "script"
	InitiatorLink   InitiatorType = "link"
	InitiatorImg    InitiatorType = "img"
	InitiatorFetch  InitiatorType = "fetch"
	InitiatorFont   InitiatorType = "font"
	InitiatorOther  InitiatorType = "other"
)

// ResourceTiming describes one network sub-resource. Immutable, owned
// exclusively by its parent Entry.
type ResourceTiming struct {
	Name          string        `json:"name"`
	InitiatorType InitiatorType `json:"initiator_type"`
	Duration      float64       `json:"duration"`      // ms
	TransferSize  int64         `json:"transfer_size"` // bytes
	StartTime     float64       `json:"start_time"`    // ms offset from navigation start
}

// Entry is one completed URL analysis. Entries are immutable once created;
// they are removed only by explicit deletion or bulk clear.
type Entry struct {
	ID           string           `json:"id"`
	URL          string           `json:"url"`
	Timestamp    time.Time        `json:"timestamp"`
	Metrics      vitals.MetricSet `json:"metrics"`
	Resources    []ResourceTiming `json:"resources,omitempty"`
	OverallScore int              `json:"overall_score"`
}

// Clone returns an independent copy of the entry.
func (e Entry) Clone() Entry {
	out := e
	out.Metrics = e.Metrics.Clone()
	if e.Resources != nil {
		out.Resources = make([]ResourceTiming, len(e.Resources))
		copy(out.Resources, e.Resources)
	}
	return out
}

// HistoricalPoint is one calendar-day trend rollup, keyed by ISO day.
type HistoricalPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD (UTC)
	LCP   float64 `json:"lcp"`
	FCP   float64 `json:"fcp"`
	CLS   float64 `json:"cls"`
	TTFB  float64 `json:"ttfb"`
	Score int     `json:"score"`
}

// Rollup projects the entry onto the trend-chart summary fields. Absent
// metrics roll up as zero in the summary; the full metric set stays on
// the entry itself.
func (e Entry) Rollup() HistoricalPoint {
	return HistoricalPoint{
		LCP:   e.Metrics[vitals.LCP],
		FCP:   e.Metrics[vitals.FCP],
		CLS:   e.Metrics[vitals.CLS],
		TTFB:  e.Metrics[vitals.TTFB],
		Score: e.OverallScore,
	}
}

// State is the aggregate root: entries newest first (cap MaxEntries) and
// historical points date ascending (cap MaxHistory). Transient session
// flags are not part of the serialized state.
type State struct {
	Entries []Entry           `json:"entries"`
	History []HistoricalPoint `json:"history"`
}

// Clone returns a deep copy so readers never share backing arrays with the
// live state.
func (s *State) Clone() *State {
	out := &State{}
	if s.Entries != nil {
		out.Entries = make([]Entry, len(s.Entries))
		for i := range s.Entries {
			out.Entries[i] = s.Entries[i].Clone()
		}
	}
	if s.History != nil {
		out.History = make([]HistoricalPoint, len(s.History))
		copy(out.History, s.History)
	}
	return out
}
