package problems

import (
	"tracker/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to problems
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/problems")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", GetProblems)
		group.GET("/:id", GetProblem)
	}
}
