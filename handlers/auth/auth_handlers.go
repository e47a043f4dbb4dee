package auth

import (
	"net/http"
	"time"

	"tracker/database"
	"tracker/middleware"
	"tracker/models"
	"tracker/utils"
	"tracker/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Login authenticates a user with email and password
// @Summary Login
// @Description Authenticate with email and password, setting the auth cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	validity := 24 * time.Hour
	if req.RememberMe {
		validity = 30 * 24 * time.Hour
	}
	token, err := utils.GenerateToken(user.ID, validity)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_connected", now)
	database.CacheInvalidate(c, database.CacheKeyUserSessionPrefix+user.ID)

	setCookieToken(c, token, req.RememberMe)
	c.JSON(http.StatusOK, AuthResponse{
		Token:         token,
		UserID:        user.ID,
		Email:         user.Email,
		OracUsername:  user.OracUsername,
		LastConnected: &now,
	})
}

// RegisterUser creates a new account
// @Summary Register
// @Description Create a new account with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string
// @Failure 400,409,500 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	err := database.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		response.Error(c, http.StatusConflict, ErrEmailInUse)
		return
	}
	if err != gorm.ErrRecordNotFound {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{Email: req.Email, Password: hashed}
	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	response.Message(c, http.StatusCreated, "Account created successfully")
}

// CheckAuth returns the authenticated user's profile
// @Summary Check authentication
// @Description Return the profile of the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	// Hide password from response for security
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie
// @Summary Logout
// @Description Clear the authentication cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	response.Message(c, http.StatusOK, "Successfully logged out")
}
