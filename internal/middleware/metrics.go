package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupulse/timetable-api/internal/service"
)

// Metrics records one HTTP observation per request. The route template
// keys the histogram so /class-schedules/:id stays a single series no
// matter how many allocations exist; unmatched requests fall back to the
// raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
