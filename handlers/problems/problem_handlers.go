package problems

import (
	"errors"
	"net/http"
	"strconv"

	"tracker/middleware"
	"tracker/services"
	"tracker/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProblems lists the caller's problems split into three columns
// @Summary List problems
// @Description List the problems the caller has any progress against, ordered by name and split into three display columns
// @Tags Problems
// @Produce json
// @Success 200 {object} ProblemColumns
// @Failure 401,403,500 {object} map[string]string
// @Router /problems [get]
// @Security Bearer
func GetProblems(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}
	if user.OracUsername == nil {
		response.Error(c, http.StatusForbidden, ErrNoUsernameClaimed)
		return
	}

	list, err := services.GetProblemsForUser(c, user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetList)
		return
	}

	c.JSON(http.StatusOK, ProblemColumns{
		Columns:    services.SplitInThirds(list),
		NoProblems: len(list) == 0,
	})
}

// GetProblem returns one problem's solver statistics
// @Summary Get problem statistics
// @Description Get one problem with its score histogram and whether the caller has any progress against it
// @Tags Problems
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} services.ProblemStats
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /problems/{id} [get]
// @Security Bearer
func GetProblem(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}
	if user.OracUsername == nil {
		response.Error(c, http.StatusForbidden, ErrNoUsernameClaimed)
		return
	}

	problemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidProblemID)
		return
	}

	stats, err := services.GetProblemStats(c, problemID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, ErrProblemNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedToGetStats)
		return
	}

	c.JSON(http.StatusOK, stats)
}
