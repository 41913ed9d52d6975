package vitals

import "math"

// Weights holds the fixed per-metric scoring weights. They sum to 100 when
// all six metrics are present; absent metrics drop out of the denominator.
var Weights = map[Metric]float64{
	LCP:  25,
	CLS:  25,
	INP:  15,
	FCP:  15,
	FID:  10,
	TTFB: 10,
}

// Rate classifies a metric value against the threshold table. Unknown
// metrics rate "good" so an unrecognized audit field never blocks
// rendering. Boundaries are inclusive on the better rating.
func Rate(m Metric, value float64) Rating {
	t, ok := Thresholds[m]
	if !ok {
		return RatingGood
	}
	switch {
	case value <= t.Good:
		return RatingGood
	case value <= t.NeedsImprovement:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

// ratingPoints maps a rating to its raw score contribution. The coarse
// three-bucket mapping avoids false precision from a single noisy
// measurement while still rewarding multi-metric improvement.
func ratingPoints(r Rating) float64 {
	switch r {
	case RatingGood:
		return 100
	case RatingNeedsImprovement:
		return 50
	default:
		return 0
	}
}

// Score aggregates a metric set into one overall 0-100 score: the weighted
// average of each present metric's rating points. Absent metrics are
// excluded from the denominator so partial audits are not penalized. An
// empty set scores 0. Pure and order-independent.
func Score(ms MetricSet) int {
	var weighted, used float64
	for m, v := range ms {
		w, ok := Weights[m]
		if !ok {
			continue
		}
		weighted += ratingPoints(Rate(m, v)) * w
		used += w
	}
	if used == 0 {
		return 0
	}
	return int(math.Round(weighted / used))
}
