package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/qdilemma/internal/modules/experiments"
	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestHandler() *Handler {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	gameSvc := game.NewSeededService(3, logger)
	service := experiments.NewService(gameSvc, nil, logger)
	return NewHandler(service, logger)
}

func TestHandleSweep(t *testing.T) {
	handler := setupTestHandler()

	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"points": 4,
		"shots":  128,
	})
	req := httptest.NewRequest("POST", "/api/experiments/sweep", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	handler.HandleSweep(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	points := data["points"].([]interface{})
	assert.Len(t, points, 4)

	first := points[0].(map[string]interface{})
	assert.InDelta(t, 1.0, first["classical"].(float64), 1e-9)
}

func TestHandleSweepEmptyBodyUsesDefaults(t *testing.T) {
	handler := setupTestHandler()

	req := httptest.NewRequest("POST", "/api/experiments/sweep", nil)
	w := httptest.NewRecorder()

	handler.HandleSweep(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Len(t, data["points"].([]interface{}), experiments.DashboardSweepPoints)
}

func TestHandleSweepRejectsBadShape(t *testing.T) {
	handler := setupTestHandler()

	bodyBytes, _ := json.Marshal(map[string]interface{}{"points": 1, "shots": 64})
	req := httptest.NewRequest("POST", "/api/experiments/sweep", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	handler.HandleSweep(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleLatestSweep(t *testing.T) {
	handler := setupTestHandler()

	// Nothing computed yet.
	req := httptest.NewRequest("GET", "/api/experiments/sweep/latest", nil)
	w := httptest.NewRecorder()
	handler.HandleLatestSweep(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A sweep populates the cache.
	bodyBytes, _ := json.Marshal(map[string]interface{}{"points": 3, "shots": 64})
	runReq := httptest.NewRequest("POST", "/api/experiments/sweep", bytes.NewReader(bodyBytes))
	handler.HandleSweep(httptest.NewRecorder(), runReq)

	w = httptest.NewRecorder()
	handler.HandleLatestSweep(w, httptest.NewRequest("GET", "/api/experiments/sweep/latest", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleEquilibrium(t *testing.T) {
	handler := setupTestHandler()

	req := httptest.NewRequest("GET", "/api/experiments/equilibrium?shots=256", nil)
	w := httptest.NewRecorder()

	handler.HandleEquilibrium(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Len(t, data["payoffs"].([]interface{}), 3)
}

func TestHandleEquilibriumRejectsBadShots(t *testing.T) {
	handler := setupTestHandler()

	req := httptest.NewRequest("GET", "/api/experiments/equilibrium?shots=lots", nil)
	w := httptest.NewRecorder()

	handler.HandleEquilibrium(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListRunsWithoutHistory(t *testing.T) {
	// No repository wired: history endpoints fail cleanly, not fatally.
	handler := setupTestHandler()

	req := httptest.NewRequest("GET", "/api/experiments/runs", nil)
	w := httptest.NewRecorder()

	handler.HandleListRuns(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRoutesAreRegistered(t *testing.T) {
	handler := setupTestHandler()

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})

	bodyBytes, _ := json.Marshal(map[string]interface{}{"points": 2, "shots": 32})
	req := httptest.NewRequest("POST", "/api/experiments/sweep", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
