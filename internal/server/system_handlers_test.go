package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSystemHealth(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	handlers := NewSystemHandlers(logger, t.TempDir(), "test")

	req := httptest.NewRequest("GET", "/api/system/health", nil)
	w := httptest.NewRecorder()

	handlers.HandleSystemHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	require.Contains(t, response, "data")
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "test", data["version"])
	assert.Contains(t, data, "goroutines")
	assert.Contains(t, data, "go_version")
}
