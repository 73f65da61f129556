// Package handlers provides HTTP handlers for sweep experiments and run
// history.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/qdilemma/internal/modules/experiments"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles experiment HTTP requests
type Handler struct {
	service *experiments.Service
	log     zerolog.Logger
}

// NewHandler creates a new experiments handler
func NewHandler(service *experiments.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "experiments").Logger(),
	}
}

// SweepRequest represents a request to run an entanglement sweep
type SweepRequest struct {
	Points int `json:"points"`
	Shots  int `json:"shots"`
}

func (req *SweepRequest) applyDefaults() {
	if req.Points == 0 {
		req.Points = experiments.DashboardSweepPoints
	}
	if req.Shots == 0 {
		req.Shots = experiments.DashboardSweepShots
	}
}

// HandleSweep handles POST /api/experiments/sweep
func (h *Handler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.log.Error().Err(err).Msg("Failed to decode request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	req.applyDefaults()

	result, err := h.service.Sweep(req.Points, req.Shots, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("Sweep rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleLatestSweep handles GET /api/experiments/sweep/latest
func (h *Handler) HandleLatestSweep(w http.ResponseWriter, r *http.Request) {
	result := h.service.LatestSweep()
	if result == nil {
		http.Error(w, "No sweep computed yet", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleEquilibrium handles GET /api/experiments/equilibrium
func (h *Handler) HandleEquilibrium(w http.ResponseWriter, r *http.Request) {
	shots := experiments.BatchSweepShots
	if raw := r.URL.Query().Get("shots"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid shots parameter", http.StatusBadRequest)
			return
		}
		shots = parsed
	}

	table, err := h.service.Equilibrium(shots)
	if err != nil {
		h.log.Warn().Err(err).Msg("Equilibrium run rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": table,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleListRuns handles GET /api/experiments/runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.service.History(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"runs":  records,
			"count": len(records),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetRun handles GET /api/experiments/runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.service.GetRun(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": record,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
