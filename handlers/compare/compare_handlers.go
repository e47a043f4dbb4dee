package compare

import (
	"errors"
	"net/http"

	"tracker/database"
	"tracker/middleware"
	"tracker/models"
	"tracker/services"
	"tracker/utils/response"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrUnknownUsername    = "No user with that username"
	ErrFailedToGetUsers   = "Failed to get users"
	ErrFailedToGetCompare = "Failed to build comparison"
)

// CompareRequest names the user to compare the caller against
type CompareRequest struct {
	Username string `json:"username" binding:"required"`
}

// GetComparableUsers lists the other users a caller can compare against
// @Summary List comparable users
// @Description List every other user with a claimed training site username, ordered by username
// @Tags Compare
// @Produce json
// @Success 200 {array} models.User
// @Failure 401,500 {object} map[string]string
// @Router /compare/users [get]
// @Security Bearer
func GetComparableUsers(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	var others []models.User
	err = database.DB.
		Where("orac_username IS NOT NULL AND id <> ?", user.ID).
		Order("orac_username").
		Find(&others).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetUsers)
		return
	}

	for i := range others {
		others[i].Password = ""
	}
	c.JSON(http.StatusOK, others)
}

// CompareWithUser builds the pairwise comparison table
// @Summary Compare with another user
// @Description Compare the caller's progress against another user's: every common problem where the results differ, plus each side's solved ratio
// @Tags Compare
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Comparison target"
// @Success 200 {object} services.Comparison
// @Failure 400,401,404,500 {object} map[string]string
// @Router /compare [post]
// @Security Bearer
func CompareWithUser(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := services.CompareUsers(c, &user, req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			response.Error(c, http.StatusNotFound, ErrUnknownUsername)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetCompare)
		return
	}

	c.JSON(http.StatusOK, comparison)
}
