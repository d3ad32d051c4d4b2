package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Middleware records per-route request counts, durations and the number of
// in-flight requests.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		HttpRequestsTotal.WithLabelValues(path).Inc()
		ActiveConnections.Inc()

		timer := prometheus.NewTimer(HttpRequestDuration.WithLabelValues(path))

		c.Next()

		timer.ObserveDuration()
		ActiveConnections.Dec()
	}
}
