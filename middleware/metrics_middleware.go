package middleware

import (
	"runtime"
	"strconv"
	"time"

	"tracker/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware collects HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		metrics.RequestInProgress.WithLabelValues(method, path).Inc()
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(duration)
		metrics.RequestInProgress.WithLabelValues(method, path).Dec()
	}
}

// UpdateSystemMetrics periodically updates runtime metrics
func UpdateSystemMetrics() {
	go func() {
		for {
			var memStats runtime.MemStats
			runtime.ReadMemStats(&memStats)

			metrics.MemoryStats.WithLabelValues("alloc").Set(float64(memStats.Alloc))
			metrics.MemoryStats.WithLabelValues("sys").Set(float64(memStats.Sys))
			metrics.MemoryStats.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
			metrics.MemoryStats.WithLabelValues("heap_inuse").Set(float64(memStats.HeapInuse))

			metrics.GoroutineCount.Set(float64(runtime.NumGoroutine()))

			time.Sleep(15 * time.Second)
		}
	}()
}
