package compare

import (
	"tracker/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to user comparison
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/compare")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/users", GetComparableUsers)
		group.POST("", CompareWithUser)
	}
}
