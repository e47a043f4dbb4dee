package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tracker/database"
	"tracker/models"
	"tracker/utils"
	"tracker/utils/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware validates the JWT from the auth cookie or the Authorization
// header and attaches the authenticated user to the request context. The user
// record is served from the session cache when possible.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		cacheKey := database.CacheKeyUserSessionPrefix + userID
		var user models.User
		if !database.CacheGet(c, cacheKey, &user) {
			if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
				response.Error(c, http.StatusUnauthorized, "User not found")
				c.Abort()
				return
			}
			database.CacheSet(c, cacheKey, user)
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user attached by
// AuthMiddleware, writing the error response itself when there is none.
func GetUserFromRequest(c *gin.Context) (models.User, error) {
	value, exists := c.Get(userContextKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Unauthorized access")
		c.Abort()
		return models.User{}, errors.New("no authenticated user on request")
	}
	user, ok := value.(models.User)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "Invalid user on request")
		c.Abort()
		return models.User{}, errors.New("unexpected user type on request")
	}
	return user, nil
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
