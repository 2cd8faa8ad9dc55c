package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func routeSet(r *gin.Engine) map[string]bool {
	set := map[string]bool{}
	for _, rt := range r.Routes() {
		set[rt.Method+" "+rt.Path] = true
	}
	return set
}

func TestRegisterSubscriptionRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSubscriptionRoutes(r.Group("/api/v1"), nil)

	routes := routeSet(r)
	for _, want := range []string{
		"GET /api/v1/subscriptions",
		"POST /api/v1/subscriptions",
		"GET /api/v1/subscriptions/stats/overview",
		"GET /api/v1/subscriptions/due-soon",
		"GET /api/v1/subscriptions/:id",
		"PUT /api/v1/subscriptions/:id",
		"DELETE /api/v1/subscriptions/:id",
		"PUT /api/v1/subscriptions/:id/renew",
	} {
		require.True(t, routes[want], "missing route %s", want)
	}
}

func TestRegisterAnalysisRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAnalysisRoutes(r.Group("/api/v1"), nil)

	routes := routeSet(r)
	for _, want := range []string{
		"GET /api/v1/analysis",
		"GET /api/v1/analysis/insights",
		"GET /api/v1/analysis/recommendations",
		"GET /api/v1/analysis/categories",
		"GET /api/v1/analysis/health",
		"GET /api/v1/analysis/savings",
	} {
		require.True(t, routes[want], "missing route %s", want)
	}
}

func TestRegisterNotificationRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterNotificationRoutes(r.Group("/api/v1"), nil, nil, nil)

	routes := routeSet(r)
	for _, want := range []string{
		"GET /api/v1/notifications/preferences",
		"PUT /api/v1/notifications/preferences",
		"GET /api/v1/notifications/history",
		"POST /api/v1/notifications/test",
		"POST /api/v1/notifications/trigger/:subscriptionId",
		"GET /api/v1/notifications/stats",
	} {
		require.True(t, routes[want], "missing route %s", want)
	}
}

func TestCurrentUserID_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-User-ID", "user-1")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
