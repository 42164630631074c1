package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptobet_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
	investmentSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptobet_investment_submissions_total",
			Help: "Total investment submissions accepted.",
		},
		[]string{"coin"},
	)
)

// MetricsMiddleware counts requests per route for the /metrics endpoint
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// CountInvestmentSubmission increments the submission counter
func CountInvestmentSubmission(coin string) {
	investmentSubmissionsTotal.WithLabelValues(coin).Inc()
}
