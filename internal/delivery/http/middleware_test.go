package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "https://furnifind-preview-42.vercel.app",
			allowedOrigins: []string{"https://furnifind-*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches first",
			origin:         "https://furnifind-preview-42.vercel.app",
			allowedOrigins: []string{"https://furnifind-*", "http://localhost:3000"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"https://furnifind-*", "http://localhost:3000"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"https://furnifind-*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"https://furnifind-*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{},
			want:           false,
		},
		{
			name:           "exact entry does not match prefix",
			origin:         "http://localhost:30001",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAllowedOrigin(tt.origin, tt.allowedOrigins))
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	allowed := []string{"http://localhost:3000", "https://furnifind-*"}

	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantCORS   bool
	}{
		{
			name:       "allowed origin - GET request",
			origin:     "http://localhost:3000",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantCORS:   true,
		},
		{
			name:       "wildcard origin - GET request",
			origin:     "https://furnifind-preview.vercel.app",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantCORS:   true,
		},
		{
			name:       "disallowed origin is rejected",
			origin:     "http://evil.com",
			method:     http.MethodGet,
			wantStatus: http.StatusForbidden,
			wantCORS:   false,
		},
		{
			name:       "no origin header",
			origin:     "",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantCORS:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware(allowed))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			corsHeader := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantCORS {
				assert.Equal(t, tt.origin, corsHeader)
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, corsHeader)
			}
		})
	}
}

func TestCORSMiddleware_PreflightRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	router.PUT("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestLoggerMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(LoggerMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagates an incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "req-123")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(LoggerMiddleware(), RecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(NewIPRateLimiter(1, 2)))
	router.POST("/upload", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusAccepted, send("192.0.2.1:1234"))
	assert.Equal(t, http.StatusAccepted, send("192.0.2.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("192.0.2.1:1234"), "burst exhausted")
	assert.Equal(t, http.StatusAccepted, send("192.0.2.2:1234"), "other IPs have their own bucket")
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(60, 1)

	assert.True(t, limiter.Allow("192.0.2.1"))
	limiter.mu.Lock()
	limiter.limiters["192.0.2.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	assert.True(t, limiter.Allow("192.0.2.2"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.limiters, 1)
	assert.Contains(t, limiter.limiters, "192.0.2.2")
}
