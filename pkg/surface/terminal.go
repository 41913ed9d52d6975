// Package surface renders analysis results for human consumption.
package surface

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/vitalscope/vitalscope/pkg/analysis"
	"github.com/vitalscope/vitalscope/pkg/suggest"
	"github.com/vitalscope/vitalscope/pkg/vitals"
)

// TerminalRenderer renders entries as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func ratingColor(r vitals.Rating) string {
	if noColor() {
		return ""
	}
	switch r {
	case vitals.RatingGood:
		return colorGreen
	case vitals.RatingNeedsImprovement:
		return colorYellow
	default:
		return colorRed
	}
}

func scoreColor(score int) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 90:
		return colorGreen
	case score >= 50:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// metricOrder fixes the display order; map iteration must not leak into
// output.
var metricOrder = []vitals.Metric{
	vitals.LCP, vitals.FCP, vitals.CLS, vitals.FID, vitals.INP, vitals.TTFB,
}

// Render writes a scorecard for one entry: overall score, per-metric
// ratings, the heaviest resources, and optimization tips.
func (r *TerminalRenderer) Render(w io.Writer, entry analysis.Entry, tips []suggest.Suggestion) error {
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("vitalscope: %s — Score %s",
			entry.URL, colored(fmt.Sprintf("%d", entry.OverallScore), scoreColor(entry.OverallScore)))))

	fmt.Fprintln(w, "Metrics:")
	for _, m := range metricOrder {
		value, ok := entry.Metrics[m]
		if !ok {
			fmt.Fprintf(w, "  %-5s %s\n", strings.ToUpper(string(m)), dim("not reported"))
			continue
		}
		rating := vitals.Rate(m, value)
		fmt.Fprintf(w, "  %-5s %s  %s\n",
			strings.ToUpper(string(m)), formatValue(m, value), colored(string(rating), ratingColor(rating)))
	}
	fmt.Fprintln(w)

	if len(entry.Resources) > 0 {
		fmt.Fprintln(w, "Heaviest resources:")
		for _, res := range heaviest(entry.Resources, 5) {
			fmt.Fprintf(w, "  %8s  %6.0fms  %-7s %s\n",
				formatBytes(res.TransferSize), res.Duration, res.InitiatorType, res.Name)
		}
		fmt.Fprintln(w)
	}

	if len(tips) > 0 {
		fmt.Fprintln(w, "Suggestions:")
		for _, tip := range tips {
			fmt.Fprintf(w, "  [%s] %s — %s\n", tip.Severity, bold(tip.Title), tip.Description)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// RenderHistory writes a compact trend table, date ascending.
func (r *TerminalRenderer) RenderHistory(w io.Writer, points []analysis.HistoricalPoint) error {
	if len(points) == 0 {
		fmt.Fprintln(w, "No historical data.")
		return nil
	}

	fmt.Fprintf(w, "%-12s %7s %7s %6s %7s %6s\n", "DATE", "LCP", "FCP", "CLS", "TTFB", "SCORE")
	for _, p := range points {
		fmt.Fprintf(w, "%-12s %6.0fms %6.0fms %6.2f %6.0fms  %s\n",
			p.Date, p.LCP, p.FCP, p.CLS, p.TTFB,
			colored(fmt.Sprintf("%5d", p.Score), scoreColor(p.Score)))
	}
	return nil
}

func formatValue(m vitals.Metric, v float64) string {
	if m == vitals.CLS {
		return fmt.Sprintf("%7.3f", v)
	}
	return fmt.Sprintf("%5.0fms", v)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.0fKB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%dB", b)
	}
}

func heaviest(resources []analysis.ResourceTiming, n int) []analysis.ResourceTiming {
	out := make([]analysis.ResourceTiming, len(resources))
	copy(out, resources)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransferSize > out[j].TransferSize
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
