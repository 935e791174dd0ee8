package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(maxRequests int, skipPaths ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(maxRequests, time.Minute, skipPaths...))
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/statements", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func doGet(router *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:12345"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	router := newLimitedRouter(2)

	assert.Equal(t, http.StatusOK, doGet(router, "/api/statements"))
	assert.Equal(t, http.StatusOK, doGet(router, "/api/statements"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "/api/statements"))
}

func TestRateLimiterSkipsExemptPaths(t *testing.T) {
	// 抓取指标的请求不占配额，也不会被限流拦截
	router := newLimitedRouter(1, "/metrics")

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(router, "/metrics"))
	}
	// 业务路径的配额没有被指标请求消耗
	assert.Equal(t, http.StatusOK, doGet(router, "/api/statements"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "/api/statements"))
}
