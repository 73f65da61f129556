// Package handlers provides HTTP handlers for running EWL games.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/rs/zerolog"
)

// Recorder persists completed runs; the experiments module provides the
// implementation.
type Recorder interface {
	Record(result *game.Result) (string, error)
}

// Handler handles game HTTP requests
type Handler struct {
	service      *game.Service
	recorder     Recorder
	defaultShots int
	log          zerolog.Logger
}

// NewHandler creates a new game handler. recorder may be nil, in which case
// runs are not persisted. defaultShots fills in run requests that omit a
// shot count.
func NewHandler(service *game.Service, recorder Recorder, defaultShots int, log zerolog.Logger) *Handler {
	if defaultShots <= 0 {
		defaultShots = 4096
	}
	return &Handler{
		service:      service,
		recorder:     recorder,
		defaultShots: defaultShots,
		log:          log.With().Str("handler", "game").Logger(),
	}
}

// RunRequest represents a request to run a single game
type RunRequest struct {
	StrategyA string  `json:"strategy_a"`
	StrategyB string  `json:"strategy_b"`
	Gamma     float64 `json:"gamma"`
	Shots     int     `json:"shots"`
}

// HandleRun handles POST /api/game/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Shots == 0 {
		req.Shots = h.defaultShots
	}

	result, err := h.service.Run(req.StrategyA, req.StrategyB, req.Gamma, req.Shots)
	if err != nil {
		h.log.Warn().Err(err).Msg("Game run rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID := ""
	if h.recorder != nil {
		runID, err = h.recorder.Record(result)
		if err != nil {
			// History is best-effort; the run itself succeeded.
			h.log.Error().Err(err).Msg("Failed to record run history")
		}
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"run_id": runID,
			"result": result,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetStrategies handles GET /api/game/strategies
func (h *Handler) HandleGetStrategies(w http.ResponseWriter, r *http.Request) {
	strategies := make([]map[string]interface{}, 0, 3)
	for _, label := range game.Strategies() {
		op, err := game.StrategyOperator(label)
		if err != nil {
			h.log.Error().Err(err).Str("strategy", label).Msg("Failed to build strategy operator")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		// 2×2 matrix as [real, imag] pairs, row-major.
		matrix := make([][][2]float64, 2)
		for i := 0; i < 2; i++ {
			matrix[i] = make([][2]float64, 2)
			for j := 0; j < 2; j++ {
				v := op.At(i, j)
				matrix[i][j] = [2]float64{real(v), imag(v)}
			}
		}

		strategies = append(strategies, map[string]interface{}{
			"label":    label,
			"operator": matrix,
		})
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"strategies": strategies,
			"count":      len(strategies),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetPayoffTable handles GET /api/game/payoff-table
func (h *Handler) HandleGetPayoffTable(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"payoffs":   game.PayoffTable(),
			"key_order": "bob_bit,alice_bit",
			"note":      "Classical Prisoner's Dilemma matrix, reused by the quantum extension",
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
