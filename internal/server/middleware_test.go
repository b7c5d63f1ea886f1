package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/njchilds90/polylead/internal/config"
)

func TestRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(rate.NewLimiter(rate.Limit(0.001), 2)))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	before := testutil.ToFloat64(rateLimitedTotal)
	codes := make([]int, 3)
	for i := range codes {
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimitedTotal))
}

func TestRateLimit_FromConfig(t *testing.T) {
	router := setupTestRouter(func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1}
	})

	w := postJSON(router, "/v1/validate", `{"expression":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(router, "/v1/validate", `{"expression":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), codeRateLimited)

	// Health stays reachable while limited.
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	hw := httptest.NewRecorder()
	router.ServeHTTP(hw, req)
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req, _ := http.NewRequest(http.MethodGet, "/id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}
