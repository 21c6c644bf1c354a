package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoponhub_http_requests_total",
		Help: "Handled HTTP requests by module, route and status.",
	}, []string{"module", "method", "route", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hoponhub_http_request_duration_seconds",
		Help:    "Time taken to serve a request.",
		Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"module", "route"})
)

// Metrics counts requests per matched route. Unmatched paths share one
// label so scanners cannot blow up cardinality.
func Metrics(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(module, c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(module, route).Observe(time.Since(start).Seconds())
	}
}
