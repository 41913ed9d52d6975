// Package vitals defines the Core Web Vitals metric model and the
// rating/scoring engine. These types are the shared vocabulary across all
// modules.
package vitals

// Metric identifies a Core Web Vitals measurement.
type Metric string

const (
	LCP  Metric = "lcp"  // Largest Contentful Paint (ms)
	FCP  Metric = "fcp"  // First Contentful Paint (ms)
	CLS  Metric = "cls"  // Cumulative Layout Shift (unitless ratio)
	FID  Metric = "fid"  // First Input Delay (ms)
	INP  Metric = "inp"  // Interaction to Next Paint (ms)
	TTFB Metric = "ttfb" // Time To First Byte (ms)
)

// Rating is the qualitative classification of a metric value.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

// Threshold holds the two cut points for a metric. Good is the inclusive
// upper bound for "good"; NeedsImprovement is the inclusive upper bound for
// "needs-improvement". Anything above is "poor". Good < NeedsImprovement
// for every row.
type Threshold struct {
	Good             float64
	NeedsImprovement float64
}

// Thresholds is the fixed per-metric threshold table.
var Thresholds = map[Metric]Threshold{
	LCP:  {Good: 2500, NeedsImprovement: 4000},
	FCP:  {Good: 1800, NeedsImprovement: 3000},
	CLS:  {Good: 0.1, NeedsImprovement: 0.25},
	FID:  {Good: 100, NeedsImprovement: 300},
	INP:  {Good: 200, NeedsImprovement: 500},
	TTFB: {Good: 800, NeedsImprovement: 1800},
}

// MetricSet maps metric names to measured values. An absent key means the
// audit source did not report that metric; zero is a real measurement and
// must never be used as a stand-in for "missing".
type MetricSet map[Metric]float64

// Clone returns an independent copy of the set.
func (ms MetricSet) Clone() MetricSet {
	if ms == nil {
		return nil
	}
	out := make(MetricSet, len(ms))
	for k, v := range ms {
		out[k] = v
	}
	return out
}
