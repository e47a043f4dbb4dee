package sync

import (
	"net/http"

	"tracker/middleware"
	"tracker/scraper"
	"tracker/services"
	"tracker/utils/response"

	"github.com/gin-gonic/gin"
)

// RunSync scrapes the training site and reconciles the caller's progress
// @Summary Run a sync
// @Description Log in to the training site with the given credentials, scrape the problem list and update the caller's progress
// @Tags Sync
// @Accept json
// @Produce json
// @Param request body SyncRequest true "Training site credentials"
// @Success 200 {object} SyncResponse
// @Failure 400,401,409,502 {object} map[string]string
// @Router /sync [post]
// @Security Bearer
func RunSync(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := services.SyncUser(c, &user, req.Username, req.Password, scraper.NewClient())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrSyncFailed)
		return
	}

	switch outcome {
	case services.SyncBadUsername:
		c.JSON(http.StatusConflict, gin.H{"status": string(outcome), "error": ErrUsernameTaken})
	case services.SyncFetchFailed:
		c.JSON(http.StatusBadGateway, gin.H{"status": string(outcome), "error": ErrFetchFailed})
	default:
		c.JSON(http.StatusOK, SyncResponse{Status: string(outcome)})
	}
}
