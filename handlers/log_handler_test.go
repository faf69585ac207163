package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"warehouse-surveillance/be/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The date gate must reject malformed dates before any store access, so
// these routers are wired with a nil DB: reaching the database would
// panic the test.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	logHandler := NewLogHandler(nil, log)
	chunkHandler := NewChunkHandler(nil, log)
	dashboardHandler := NewDashboardHandler(nil, log)
	analyticsHandler := NewAnalyticsHandler(nil, log)

	router := gin.New()
	warehouse := router.Group("/api/v1/warehouses/:warehouse_id")
	warehouse.GET("/dashboard", dashboardHandler.GetDashboard)
	camera := warehouse.Group("/cameras/:cam_id")
	camera.GET("/chunks", chunkHandler.GetChunks)
	camera.GET("/logs/employees", logHandler.GetEmployeeLogs)
	camera.GET("/logs/gunny-bags", logHandler.GetGunnyBagLogs)
	camera.GET("/logs/vehicles", logHandler.GetVehicleLogs)
	camera.GET("/analytics/vehicle-gunny-count", analyticsHandler.GetVehicleGunnyCount)
	return router
}

func TestDateValidationRejectsBadFormats(t *testing.T) {
	router := newTestRouter()

	paths := []string{
		"/api/v1/warehouses/WH001/cameras/1/chunks",
		"/api/v1/warehouses/WH001/cameras/1/logs/employees",
		"/api/v1/warehouses/WH001/cameras/1/logs/gunny-bags",
		"/api/v1/warehouses/WH001/cameras/1/logs/vehicles",
		"/api/v1/warehouses/WH001/cameras/1/analytics/vehicle-gunny-count",
		"/api/v1/warehouses/WH001/dashboard",
	}
	badDates := []string{
		"22-09-2025",
		"2025/09/22",
		"2025-9-22",
		"2025-09-22T00:00:00",
		"yesterday",
		"",
	}

	for _, path := range paths {
		for _, date := range badDates {
			req := httptest.NewRequest(http.MethodGet, path+"?date="+date, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code,
				"path=%s date=%q", path, date)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", body["error"])
		}
	}
}

func TestStreamURLRequiresQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCameraHandler(nil, nil, logger.NewNop())
	router.GET("/api/v1/cameras/stream-url", handler.GetStreamURL)

	cases := []struct {
		name string
		path string
	}{
		{"no params", "/api/v1/cameras/stream-url"},
		{"missing cam_id", "/api/v1/cameras/stream-url?warehouse_id=WH001"},
		{"missing warehouse_id", "/api/v1/cameras/stream-url?cam_id=1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestChatRequestInferenceDefaults(t *testing.T) {
	req := ChatRequest{UserQuery: "what happened?"}

	cfg := req.inferenceConfig()

	require.NotNil(t, cfg.MaxTokens)
	require.NotNil(t, cfg.Temperature)
	require.NotNil(t, cfg.TopP)
	assert.Equal(t, int32(1000), *cfg.MaxTokens)
	assert.InDelta(t, 0.7, float64(*cfg.Temperature), 1e-6)
	assert.InDelta(t, 0.9, float64(*cfg.TopP), 1e-6)
}

func TestChatRequestInferenceOverridesKept(t *testing.T) {
	var body ChatRequest
	payload := `{"UserQuery":"q","inferenceConfig":{"maxTokens":256,"temperature":0.2}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &body))

	cfg := body.inferenceConfig()

	assert.Equal(t, int32(256), *cfg.MaxTokens)
	assert.InDelta(t, 0.2, float64(*cfg.Temperature), 1e-6)
	// Unset fields still fall back to defaults.
	assert.InDelta(t, 0.9, float64(*cfg.TopP), 1e-6)
}
