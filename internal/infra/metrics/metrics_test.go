package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/incomes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/incomes/"+strings.Repeat("a", i+1), nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/incomes/:id", http.MethodGet, "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "finance_http_requests_total")
	require.Contains(t, w.Body.String(), "go_goroutines")
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.AuthFailure("invalid_token")
	m.AuthFailure("invalid_token")
	m.TransactionCreated("income")

	require.Equal(t, 2.0, testutil.ToFloat64(m.authFailures.WithLabelValues("invalid_token")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("income")))
}
