package vitals_test

import (
	"testing"

	"github.com/vitalscope/vitalscope/pkg/vitals"
)

func TestRateUnknownMetricFailsOpen(t *testing.T) {
	for _, v := range []float64{0, 1, 9999, 1e9} {
		if got := vitals.Rate("speed-index", v); got != vitals.RatingGood {
			t.Errorf("Rate(speed-index, %v) = %q, want %q", v, got, vitals.RatingGood)
		}
	}
}

func TestRateBoundariesInclusive(t *testing.T) {
	for m, th := range vitals.Thresholds {
		if got := vitals.Rate(m, th.Good); got != vitals.RatingGood {
			t.Errorf("Rate(%s, %v) = %q, want good (boundary inclusive)", m, th.Good, got)
		}
		if got := vitals.Rate(m, th.NeedsImprovement); got != vitals.RatingNeedsImprovement {
			t.Errorf("Rate(%s, %v) = %q, want needs-improvement (boundary inclusive)", m, th.NeedsImprovement, got)
		}
	}
}

func TestRateBuckets(t *testing.T) {
	tests := []struct {
		metric vitals.Metric
		value  float64
		want   vitals.Rating
	}{
		{vitals.LCP, 2000, vitals.RatingGood},
		{vitals.LCP, 3000, vitals.RatingNeedsImprovement},
		{vitals.LCP, 4001, vitals.RatingPoor},
		{vitals.FCP, 1500, vitals.RatingGood},
		{vitals.FCP, 2500, vitals.RatingNeedsImprovement},
		{vitals.FCP, 3500, vitals.RatingPoor},
		{vitals.CLS, 0.05, vitals.RatingGood},
		{vitals.CLS, 0.2, vitals.RatingNeedsImprovement},
		{vitals.CLS, 0.3, vitals.RatingPoor},
		{vitals.FID, 80, vitals.RatingGood},
		{vitals.FID, 200, vitals.RatingNeedsImprovement},
		{vitals.FID, 400, vitals.RatingPoor},
		{vitals.INP, 150, vitals.RatingGood},
		{vitals.INP, 350, vitals.RatingNeedsImprovement},
		{vitals.INP, 600, vitals.RatingPoor},
		{vitals.TTFB, 700, vitals.RatingGood},
		{vitals.TTFB, 1200, vitals.RatingNeedsImprovement},
		{vitals.TTFB, 2000, vitals.RatingPoor},
	}
	for _, tt := range tests {
		if got := vitals.Rate(tt.metric, tt.value); got != tt.want {
			t.Errorf("Rate(%s, %v) = %q, want %q", tt.metric, tt.value, got, tt.want)
		}
	}
}

func TestThresholdTableOrdering(t *testing.T) {
	for m, th := range vitals.Thresholds {
		if th.Good >= th.NeedsImprovement {
			t.Errorf("%s: good (%v) must be below needsImprovement (%v)", m, th.Good, th.NeedsImprovement)
		}
	}
}

func TestScoreEmptySet(t *testing.T) {
	if got := vitals.Score(vitals.MetricSet{}); got != 0 {
		t.Errorf("Score(empty) = %d, want 0", got)
	}
	if got := vitals.Score(nil); got != 0 {
		t.Errorf("Score(nil) = %d, want 0", got)
	}
}

func TestScoreAllGood(t *testing.T) {
	ms := vitals.MetricSet{
		vitals.LCP:  2000,
		vitals.CLS:  0.05,
		vitals.FCP:  1500,
		vitals.FID:  80,
		vitals.INP:  150,
		vitals.TTFB: 700,
	}
	if got := vitals.Score(ms); got != 100 {
		t.Errorf("Score(all good) = %d, want 100", got)
	}
}

func TestScoreSinglePoorMetric(t *testing.T) {
	// LCP alone, rated poor: it carries the whole denominator.
	if got := vitals.Score(vitals.MetricSet{vitals.LCP: 5000}); got != 0 {
		t.Errorf("Score(lcp=5000) = %d, want 0", got)
	}
}

func TestScorePartialSetWeighting(t *testing.T) {
	// lcp needs-improvement (50 pts, weight 25) + cls good (100 pts, weight 25)
	// = round((50*25 + 100*25) / 50) = 75.
	ms := vitals.MetricSet{vitals.LCP: 3000, vitals.CLS: 0.05}
	if got := vitals.Score(ms); got != 75 {
		t.Errorf("Score(lcp=3000, cls=0.05) = %d, want 75", got)
	}
}

func TestScoreZeroValueIsRealMeasurement(t *testing.T) {
	// A present zero rates good; it must not be confused with absence.
	ms := vitals.MetricSet{vitals.LCP: 0, vitals.TTFB: 2000}
	// lcp good (100*25) + ttfb poor (0*10) = 2500/35 = 71.4 -> 71
	if got := vitals.Score(ms); got != 71 {
		t.Errorf("Score(lcp=0, ttfb=2000) = %d, want 71", got)
	}
}

func TestScoreIgnoresUnknownMetrics(t *testing.T) {
	base := vitals.MetricSet{vitals.LCP: 2000}
	withExtra := vitals.MetricSet{vitals.LCP: 2000, "speed-index": 9000}
	if a, b := vitals.Score(base), vitals.Score(withExtra); a != b {
		t.Errorf("unknown metric changed score: %d vs %d", a, b)
	}
}

func TestScoreDeterministic(t *testing.T) {
	ms := vitals.MetricSet{
		vitals.LCP: 3000, vitals.CLS: 0.2, vitals.FCP: 1000,
		vitals.FID: 350, vitals.INP: 150, vitals.TTFB: 900,
	}
	first := vitals.Score(ms)
	for i := 0; i < 50; i++ {
		if got := vitals.Score(ms); got != first {
			t.Fatalf("Score not deterministic: %d vs %d", got, first)
		}
	}
}
