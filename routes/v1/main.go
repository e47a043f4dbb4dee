package v1

import (
	"tracker/handlers/auth"
	"tracker/handlers/compare"
	"tracker/handlers/feed"
	"tracker/handlers/problems"
	"tracker/handlers/sync"
	"tracker/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(1000, 150)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	sync.RegisterRoutes(v1)
	problems.RegisterRoutes(v1)
	compare.RegisterRoutes(v1)
	feed.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
