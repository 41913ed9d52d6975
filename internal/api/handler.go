// Package api implements the REST surface backing the dashboard UI.
// It exposes analyze and read endpoints over the analysis store.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/vitalscope/vitalscope/internal/audit"
	"github.com/vitalscope/vitalscope/internal/store"
	"github.com/vitalscope/vitalscope/pkg/analysis"
	"github.com/vitalscope/vitalscope/pkg/suggest"
)

// Analyzer runs a performance audit for a URL. Satisfied by *audit.Client.
type Analyzer interface {
	Analyze(ctx context.Context, url string, strategy audit.Strategy) (*analysis.Entry, error)
}

// Handler is the top-level API handler.
type Handler struct {
	store    *store.Store
	analyzer Analyzer
	strategy audit.Strategy
}

// NewHandler creates a new API handler. The strategy is the default used
// when a request does not specify one.
func NewHandler(st *store.Store, analyzer Analyzer, strategy audit.Strategy) *Handler {
	if strategy == "" {
		strategy = audit.StrategyMobile
	}
	return &Handler{store: st, analyzer: analyzer, strategy: strategy}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyses", h.handleAnalyze)

	mux.HandleFunc("GET /api/v1/entries", h.handleListEntries)
	mux.HandleFunc("DELETE /api/v1/entries/{id}", h.handleDeleteEntry)
	mux.HandleFunc("DELETE /api/v1/entries", h.handleClearEntries)
	mux.HandleFunc("GET /api/v1/entries/{id}/suggestions", h.handleSuggestions)

	mux.HandleFunc("GET /api/v1/history", h.handleHistory)

	mux.HandleFunc("GET /healthz", h.handleHealth)
}

type analyzeRequest struct {
	URL      string `json:"url"`
	Strategy string `json:"strategy,omitempty"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	strategy := h.strategy
	switch req.Strategy {
	case "":
	case string(audit.StrategyMobile), string(audit.StrategyDesktop):
		strategy = audit.Strategy(req.Strategy)
	default:
		writeError(w, http.StatusBadRequest, "strategy must be mobile or desktop")
		return
	}

	h.store.SetCurrentURL(req.URL)

	draft, err := h.analyzer.Analyze(r.Context(), req.URL, strategy)
	if err != nil {
		log.Printf("api: analyze %s: %v", req.URL, err)
		writeError(w, http.StatusBadGateway, "audit request failed")
		return
	}

	entry := h.store.AddEntry(r.Context(), *draft)
	h.store.AddHistoricalPoint(r.Context(), entry.Rollup())
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":  h.store.Entries(),
		"hydrated": h.store.Hydrated(),
	})
}

func (h *Handler) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	// Removing a missing id is a no-op; 204 either way.
	h.store.RemoveEntry(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearEntries(w http.ResponseWriter, r *http.Request) {
	h.store.ClearEntries(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.store.Entry(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	tips := suggest.ForEntry(entry)
	if tips == nil {
		tips = []suggest.Suggestion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": tips})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"history":  h.store.History(),
		"hydrated": h.store.Hydrated(),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
