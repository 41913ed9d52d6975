// Package audit talks to the external performance-audit service. Its only
// producer-side responsibility toward the core is mapping whatever subset
// of the known metrics the service reports into a metric set; missing
// fields stay absent, never defaulted to zero.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vitalscope/vitalscope/pkg/analysis"
	"github.com/vitalscope/vitalscope/pkg/vitals"
)

// Strategy selects the device profile the audit emulates.
type Strategy string

const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

// DefaultBaseURL is the public PageSpeed Insights endpoint.
const DefaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Client calls the audit service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client for the given endpoint. An empty baseURL uses
// DefaultBaseURL; the api key is optional.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// auditResponse mirrors the subset of the audit payload we consume. Metric
// audits are pointers: a missing audit means the service did not measure
// it, which must stay distinguishable from a zero measurement.
type auditResponse struct {
	LighthouseResult struct {
		Audits struct {
			LCP  *numericAudit `json:"largest-contentful-paint"`
			FCP  *numericAudit `json:"first-contentful-paint"`
			CLS  *numericAudit `json:"cumulative-layout-shift"`
			FID  *numericAudit `json:"max-potential-fid"`
			INP  *numericAudit `json:"interaction-to-next-paint"`
			TTFB *numericAudit `json:"server-response-time"`

			NetworkRequests *struct {
				Details struct {
					Items []networkRequestItem `json:"items"`
				} `json:"details"`
			} `json:"network-requests"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

type numericAudit struct {
	NumericValue float64 `json:"numericValue"`
}

type networkRequestItem struct {
	URL          string  `json:"url"`
	ResourceType string  `json:"resourceType"`
	TransferSize int64   `json:"transferSize"`
	StartTime    float64 `json:"startTime"`
	EndTime      float64 `json:"endTime"`
}

// Analyze audits the given page URL and returns an entry draft ready for
// the store: metrics mapped, resources ordered by start time as reported,
// and the overall score computed. The draft has no id; the store assigns
// identity on insert.
func (c *Client) Analyze(ctx context.Context, pageURL string, strategy Strategy) (*analysis.Entry, error) {
	endpoint, err := c.requestURL(pageURL, strategy)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("audit request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload auditResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode audit response: %w", err)
	}

	metrics := mapMetrics(&payload)
	entry := &analysis.Entry{
		URL:          pageURL,
		Metrics:      metrics,
		Resources:    mapResources(&payload),
		OverallScore: vitals.Score(metrics),
	}
	return entry, nil
}

func (c *Client) requestURL(pageURL string, strategy Strategy) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse audit endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", pageURL)
	q.Set("strategy", string(strategy))
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// mapMetrics copies only the audits the response actually carries.
func mapMetrics(payload *auditResponse) vitals.MetricSet {
	audits := payload.LighthouseResult.Audits
	metrics := make(vitals.MetricSet)

	set := func(m vitals.Metric, a *numericAudit) {
		if a != nil {
			metrics[m] = a.NumericValue
		}
	}
	set(vitals.LCP, audits.LCP)
	set(vitals.FCP, audits.FCP)
	set(vitals.CLS, audits.CLS)
	set(vitals.FID, audits.FID)
	set(vitals.INP, audits.INP)
	set(vitals.TTFB, audits.TTFB)

	return metrics
}

func mapResources(payload *auditResponse) []analysis.ResourceTiming {
	nr := payload.LighthouseResult.Audits.NetworkRequests
	if nr == nil {
		return nil
	}

	resources := make([]analysis.ResourceTiming, 0, len(nr.Details.Items))
	for _, item := range nr.Details.Items {
		duration := item.EndTime - item.StartTime
		if duration < 0 {
			duration = 0
		}
		resources = append(resources, analysis.ResourceTiming{
			Name:          item.URL,
			InitiatorType: classifyInitiator(item.ResourceType),
			Duration:      duration,
			TransferSize:  item.TransferSize,
			StartTime:     item.StartTime,
		})
	}
	return resources
}

func classifyInitiator(resourceType string) analysis.InitiatorType {
	switch strings.ToLower(resourceType) {
	case "script":
		return analysis.InitiatorScript
	case "stylesheet":
		return analysis.InitiatorLink
	case "image":
		return analysis.InitiatorImg
	case "xhr", "fetch":
		return analysis.InitiatorFetch
	case "font":
		return analysis.InitiatorFont
	default:
		return analysis.InitiatorOther
	}
}
