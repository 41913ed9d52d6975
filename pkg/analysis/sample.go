package analysis

import (
	"time"

	"github.com/vitalscope/vitalscope/pkg/vitals"
)

// SampleState returns the fixed demonstration dataset used to give
// first-time users a non-empty dashboard without contacting any external
// service. Metric values are fixed; dates are anchored to "now" so trend
// charts render a recent window.
func SampleState() *State {
	now := time.Now().UTC()

	entries := []Entry{
		{
			ID:        "sample-1",
			URL:       "https://example.com",
			Timestamp: now.Add(-2 * time.Hour),
			Metrics: vitals.MetricSet{
				vitals.LCP:  2100,
				vitals.FCP:  1400,
				vitals.CLS:  0.06,
				vitals.FID:  70,
				vitals.INP:  160,
				vitals.TTFB: 620,
			},
			Resources: []ResourceTiming{
				{Name: "https://example.com/app.js", InitiatorType: InitiatorScript, Duration: 320, TransferSize: 184_320, StartTime: 120},
				{Name: "https://example.com/styles.css", InitiatorType: InitiatorLink, Duration: 95, TransferSize: 28_672, StartTime: 80},
				{Name: "https://example.com/hero.webp", InitiatorType: InitiatorImg, Duration: 410, TransferSize: 512_000, StartTime: 200},
				{Name: "https://example.com/api/session", InitiatorType: InitiatorFetch, Duration: 140, TransferSize: 2_048, StartTime: 450},
				{Name: "https://example.com/inter.woff2", InitiatorType: InitiatorFont, Duration: 60, TransferSize: 45_056, StartTime: 110},
			},
		},
		{
			ID:        "sample-2",
			URL:       "https://example.com/pricing",
			Timestamp: now.Add(-26 * time.Hour),
			Metrics: vitals.MetricSet{
				vitals.LCP:  3400,
				vitals.FCP:  2100,
				vitals.CLS:  0.18,
				vitals.INP:  280,
				vitals.TTFB: 950,
			},
			Resources: []ResourceTiming{
				{Name: "https://example.com/vendor.js", InitiatorType: InitiatorScript, Duration: 780, TransferSize: 1_248_576, StartTime: 140},
				{Name: "https://example.com/pricing.css", InitiatorType: InitiatorLink, Duration: 120, TransferSize: 36_864, StartTime: 90},
				{Name: "https://cdn.example.com/banner.png", InitiatorType: InitiatorImg, Duration: 650, TransferSize: 1_843_200, StartTime: 310},
			},
		},
		{
			ID:        "sample-3",
			URL:       "https://example.com/blog",
			Timestamp: now.Add(-50 * time.Hour),
			Metrics: vitals.MetricSet{
				vitals.LCP:  4600,
				vitals.FCP:  3200,
				vitals.CLS:  0.31,
				vitals.FID:  340,
				vitals.INP:  560,
				vitals.TTFB: 1950,
			},
			Resources: []ResourceTiming{
				{Name: "https://example.com/bundle.js", InitiatorType: InitiatorScript, Duration: 1450, TransferSize: 2_621_440, StartTime: 180},
				{Name: "https://ads.example.net/tag.js", InitiatorType: InitiatorScript, Duration: 920, TransferSize: 327_680, StartTime: 400},
			},
		},
	}
	for i := range entries {
		entries[i].OverallScore = vitals.Score(entries[i].Metrics)
	}

	// 14 days of gently improving trend, oldest first.
	history := make([]HistoricalPoint, 0, 14)
	for i := 13; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		improve := float64(13 - i)
		p := HistoricalPoint{
			Date: day.Format("2006-01-02"),
			LCP:  3600 - improve*110,
			FCP:  2400 - improve*70,
			CLS:  0.24 - improve*0.012,
			TTFB: 1300 - improve*40,
		}
		p.Score = vitals.Score(vitals.MetricSet{
			vitals.LCP:  p.LCP,
			vitals.FCP:  p.FCP,
			vitals.CLS:  p.CLS,
			vitals.TTFB: p.TTFB,
		})
		history = append(history, p)
	}

	return &State{Entries: entries, History: history}
}
