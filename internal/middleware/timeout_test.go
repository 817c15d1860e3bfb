package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeoutConfig(t *testing.T) {
	cfg := DefaultTimeoutConfig()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "Request timeout", cfg.ErrorMessage)
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		timeout     time.Duration
		handler     gin.HandlerFunc
		wantStatus  int
		mustContain string
	}{
		{
			name:    "fast request completes",
			timeout: time.Second,
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "handler that waits out the deadline gets 504",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			wantStatus:  http.StatusGatewayTimeout,
			mustContain: "timeout",
		},
		{
			name:    "handler that answered late keeps its response",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.String(http.StatusServiceUnavailable, "gave up")
			},
			wantStatus:  http.StatusServiceUnavailable,
			mustContain: "gave up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Timeout(TimeoutConfig{Timeout: tt.timeout, ErrorMessage: "timeout"}))
			router.POST("/api/analyze", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.mustContain != "" {
				assert.Contains(t, w.Body.String(), tt.mustContain)
			}
		})
	}
}

func TestTimeoutWithDuration_ContextHasDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var deadline time.Time
	hasDeadline := false
	router.Use(TimeoutWithDuration(time.Second))
	router.GET("/test", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	start := time.Now()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(time.Second), deadline, 500*time.Millisecond)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeout_ZeroUsesDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var deadline time.Time
	router.Use(Timeout(TimeoutConfig{}))
	router.GET("/test", func(c *gin.Context) {
		deadline, _ = c.Request.Context().Deadline()
	})

	start := time.Now()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.WithinDuration(t, start.Add(30*time.Second), deadline, time.Second)
}
