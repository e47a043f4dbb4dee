package feed

import (
	"net/http"

	"tracker/services"
	"tracker/utils/response"

	"github.com/gin-gonic/gin"
)

const ErrFailedToGetFeed = "Failed to get the activity feed"

// GetFeed returns the most recent activity feed rows
// @Summary Get the activity feed
// @Description Get the five most recent achievements, newest first
// @Tags Feed
// @Produce json
// @Success 200 {array} services.FeedRow
// @Failure 500 {object} map[string]string
// @Router /feed [get]
func GetFeed(c *gin.Context) {
	rows, err := services.GetRecentFeed(c)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetFeed)
		return
	}
	c.JSON(http.StatusOK, rows)
}
