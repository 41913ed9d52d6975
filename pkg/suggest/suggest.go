// Package suggest generates rule-based optimization tips from a completed
// analysis entry. Rules are fixed threshold lookups over the entry's
// metrics and resource timings; output is deterministic and ordered by
// severity.
package suggest

import (
	"fmt"
	"sort"

	"github.com/vitalscope/vitalscope/pkg/analysis"
	"github.com/vitalscope/vitalscope/pkg/vitals"
)

// Severity indicates how concerning a finding is.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Category groups suggestions for display.
type Category string

const (
	CategoryLoading       Category = "loading"
	CategoryInteractivity Category = "interactivity"
	CategoryStability     Category = "stability"
	CategoryResources     Category = "resources"
)

// Suggestion is a human- and machine-readable recommendation.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Targets     []string `json:"targets,omitempty"` // affected resource names, if any
}

// Resource rule cut points.
const (
	largeTransferBytes = 1 << 20 // 1 MiB per resource
	slowScriptMs       = 500
	manyRequests       = 75
)

type metricRule struct {
	metric   vitals.Metric
	category Category
	title    string
	poor     string
	needs    string
}

// metricRules maps each known metric to its canned recommendations. The
// poor text is used at HIGH severity, the needs text at MEDIUM.
var metricRules = []metricRule{
	{
		metric:   vitals.LCP,
		category: CategoryLoading,
		title:    "Reduce Largest Contentful Paint",
		poor:     "The largest above-the-fold element renders too late. Preload the hero image, inline critical CSS, and defer non-essential scripts.",
		needs:    "The largest element could render sooner. Check render-blocking resources and image loading priority.",
	},
	{
		metric:   vitals.FCP,
		category: CategoryLoading,
		title:    "Speed up First Contentful Paint",
		poor:     "First paint is heavily delayed. Eliminate render-blocking stylesheets and reduce server response time.",
		needs:    "First paint is slower than it should be. Consider inlining critical CSS and preconnecting to required origins.",
	},
	{
		metric:   vitals.CLS,
		category: CategoryStability,
		title:    "Eliminate layout shifts",
		poor:     "Content jumps noticeably during load. Set explicit dimensions on images, ads, and embeds, and avoid inserting content above existing content.",
		needs:    "Some layout shift occurs during load. Reserve space for late-loading elements.",
	},
	{
		metric:   vitals.FID,
		category: CategoryInteractivity,
		title:    "Reduce input delay",
		poor:     "The main thread is blocked when users first interact. Break up long tasks and defer unused JavaScript.",
		needs:    "First input handling is sluggish. Consider code-splitting heavy bundles.",
	},
	{
		metric:   vitals.INP,
		category: CategoryInteractivity,
		title:    "Improve interaction responsiveness",
		poor:     "Interactions regularly take too long to paint a response. Profile event handlers and move heavy work off the main thread.",
		needs:    "Interaction latency is noticeable. Audit expensive handlers and layout thrash.",
	},
	{
		metric:   vitals.TTFB,
		category: CategoryLoading,
		title:    "Lower server response time",
		poor:     "The server takes too long to answer. Add caching or a CDN, and profile backend latency.",
		needs:    "Server response time has room to improve. Review cache headers and origin latency.",
	},
}

var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// ForEntry evaluates all rules against the entry. Metrics the audit did not
// report produce no suggestions.
func ForEntry(entry analysis.Entry) []Suggestion {
	var out []Suggestion

	for _, rule := range metricRules {
		value, ok := entry.Metrics[rule.metric]
		if !ok {
			continue
		}
		switch vitals.Rate(rule.metric, value) {
		case vitals.RatingPoor:
			out = append(out, Suggestion{
				Title:       rule.title,
				Description: rule.poor,
				Category:    rule.category,
				Severity:    SeverityHigh,
			})
		case vitals.RatingNeedsImprovement:
			out = append(out, Suggestion{
				Title:       rule.title,
				Description: rule.needs,
				Category:    rule.category,
				Severity:    SeverityMedium,
			})
		}
	}

	out = append(out, resourceSuggestions(entry.Resources)...)

	sort.SliceStable(out, func(i, j int) bool {
		return severityRank[out[i].Severity] < severityRank[out[j].Severity]
	})
	return out
}

func resourceSuggestions(resources []analysis.ResourceTiming) []Suggestion {
	var out []Suggestion

	var oversized, slowScripts []string
	for _, r := range resources {
		if r.TransferSize >= largeTransferBytes {
			oversized = append(oversized, r.Name)
		}
		if r.InitiatorType == analysis.InitiatorScript && r.Duration >= slowScriptMs {
			slowScripts = append(slowScripts, r.Name)
		}
	}

	if len(oversized) > 0 {
		out = append(out, Suggestion{
			Title:       "Compress oversized resources",
			Description: fmt.Sprintf("%d resources transfer more than 1 MiB. Serve modern image formats and enable compression.", len(oversized)),
			Category:    CategoryResources,
			Severity:    SeverityMedium,
			Targets:     oversized,
		})
	}
	if len(slowScripts) > 0 {
		out = append(out, Suggestion{
			Title:       "Trim slow scripts",
			Description: fmt.Sprintf("%d scripts take over %dms to load. Split bundles and defer what is not needed up front.", len(slowScripts), slowScriptMs),
			Category:    CategoryResources,
			Severity:    SeverityMedium,
			Targets:     slowScripts,
		})
	}
	if len(resources) >= manyRequests {
		out = append(out, Suggestion{
			Title:       "Reduce request count",
			Description: fmt.Sprintf("The page loads %d sub-resources. Consolidate assets and remove unused third-party tags.", len(resources)),
			Category:    CategoryResources,
			Severity:    SeverityLow,
		})
	}

	return out
}
