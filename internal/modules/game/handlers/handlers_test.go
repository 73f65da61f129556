package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestHandler() *Handler {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	service := game.NewSeededService(7, logger)
	return NewHandler(service, nil, 4096, logger)
}

func TestHandleRun(t *testing.T) {
	handler := setupTestHandler()

	requestBody := map[string]interface{}{
		"strategy_a": "Defect",
		"strategy_b": "Defect",
		"gamma":      0.0,
		"shots":      512,
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest("POST", "/api/game/run", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	handler.HandleRun(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	require.Contains(t, response, "data")
	data := response["data"].(map[string]interface{})
	result := data["result"].(map[string]interface{})

	assert.Equal(t, "Defect", result["strategy_a"])
	assert.InDelta(t, 1.0, result["payoff_alice"].(float64), 1e-9)
	assert.InDelta(t, 1.0, result["payoff_bob"].(float64), 1e-9)
	assert.NotEmpty(t, result["diagram"])
}

func TestHandleRunDefaultsShots(t *testing.T) {
	handler := setupTestHandler()

	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"strategy_a": "C",
		"strategy_b": "C",
		"gamma":      0.0,
	})

	req := httptest.NewRequest("POST", "/api/game/run", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	handler.HandleRun(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	result := response["data"].(map[string]interface{})["result"].(map[string]interface{})
	assert.Equal(t, float64(4096), result["shots"])
}

func TestHandleRunRejectsUnknownStrategy(t *testing.T) {
	handler := setupTestHandler()

	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"strategy_a": "Pavlov",
		"strategy_b": "Defect",
		"gamma":      0.0,
		"shots":      128,
	})

	req := httptest.NewRequest("POST", "/api/game/run", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	handler.HandleRun(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown strategy")
}

func TestHandleRunRejectsMalformedBody(t *testing.T) {
	handler := setupTestHandler()

	req := httptest.NewRequest("POST", "/api/game/run", bytes.NewReader([]byte("{broken")))
	w := httptest.NewRecorder()

	handler.HandleRun(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetStrategies(t *testing.T) {
	handler := setupTestHandler()

	req := httptest.NewRequest("GET", "/api/game/strategies", nil)
	w := httptest.NewRecorder()

	handler.HandleGetStrategies(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["count"])
}

func TestHandleGetPayoffTable(t *testing.T) {
	handler := setupTestHandler()

	req := httptest.NewRequest("GET", "/api/game/payoff-table", nil)
	w := httptest.NewRecorder()

	handler.HandleGetPayoffTable(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	payoffs := response["data"].(map[string]interface{})["payoffs"].(map[string]interface{})
	require.Len(t, payoffs, 4)

	mutual := payoffs["00"].(map[string]interface{})
	assert.Equal(t, float64(3), mutual["alice"])
	assert.Equal(t, float64(3), mutual["bob"])
}
