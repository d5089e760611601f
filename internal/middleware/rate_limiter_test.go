package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/pages", rl.Scope("public", PerSecond(0, 2)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.POST("/login", rl.Scope("auth", PerMinute(0, 1)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func get(router *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:1234"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestScopeEnforcesBurst(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	router := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, get(router, http.MethodGet, "/pages"))
	assert.Equal(t, http.StatusOK, get(router, http.MethodGet, "/pages"))
	assert.Equal(t, http.StatusTooManyRequests, get(router, http.MethodGet, "/pages"))
}

func TestScopesAreIndependent(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	router := limitedRouter(rl)

	// exhaust the auth budget; the public scope keeps its own
	assert.Equal(t, http.StatusOK, get(router, http.MethodPost, "/login"))
	assert.Equal(t, http.StatusTooManyRequests, get(router, http.MethodPost, "/login"))

	assert.Equal(t, http.StatusOK, get(router, http.MethodGet, "/pages"))
}

func TestScopeKeysByClientIP(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	router := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, get(router, http.MethodPost, "/login"))
	assert.Equal(t, http.StatusTooManyRequests, get(router, http.MethodPost, "/login"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.20:1234"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
