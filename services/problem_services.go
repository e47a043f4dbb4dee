package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"tracker/database"
	"tracker/models"
	"tracker/utils"

	"gorm.io/gorm"
)

// GetSolutionsForUser returns every solution the user holds, with problems
// preloaded, read-through cached until the next sync changes one of them.
func GetSolutionsForUser(ctx context.Context, userID string) ([]models.Solution, error) {
	key := database.CacheKeyUserSolutionsPrefix + userID
	var solutions []models.Solution
	if database.CacheGet(ctx, key, &solutions) {
		return solutions, nil
	}

	err := database.DB.Preload("Problem").Where("user_id = ?", userID).Find(&solutions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load solutions for user %s: %w", userID, err)
	}

	database.CacheSet(ctx, key, solutions)
	return solutions, nil
}

// GetProblemsForUser returns the problems the user has any record against,
// ordered by name.
func GetProblemsForUser(ctx context.Context, userID string) ([]models.Problem, error) {
	solutions, err := GetSolutionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	problems := make([]models.Problem, 0, len(solutions))
	for _, solution := range solutions {
		if solution.Problem != nil {
			problems = append(problems, *solution.Problem)
		}
	}
	sort.Slice(problems, func(i, j int) bool {
		return problems[i].Name < problems[j].Name
	})
	return problems, nil
}

// SplitInThirds splits an ordered problem list into three display columns,
// biasing remainders toward the earlier columns.
func SplitInThirds(problems []models.Problem) [3][]models.Problem {
	total := len(problems)
	third := total / 3
	twoThird := 2 * third

	switch total % 3 {
	case 1:
		third++
		twoThird++
	case 2:
		third++
		twoThird += 2
	}

	return [3][]models.Problem{
		problems[:third],
		problems[third:twoThird],
		problems[twoThird:],
	}
}

// ProblemStats is the solver summary for one problem
type ProblemStats struct {
	Problem  models.Problem      `json:"problem"`
	Solved   int                 `json:"solved"`
	Unsolved int                 `json:"unsolved"`
	Scores   []utils.ScoreBucket `json:"scores"`
	Access   bool                `json:"access"`
}

// GetProblemStats returns the aggregate solver statistics for one problem and
// whether the viewer holds any solution against it. Returns
// gorm.ErrRecordNotFound when the problem does not exist.
func GetProblemStats(ctx context.Context, problemID int, viewerID string) (*ProblemStats, error) {
	var problem models.Problem
	if err := database.DB.First(&problem, "id = ?", problemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load problem %d: %w", problemID, err)
	}

	key := database.CacheKeyProblemSolversPrefix + strconv.Itoa(problemID)
	var solutions []models.Solution
	if !database.CacheGet(ctx, key, &solutions) {
		err := database.DB.Where("problem_id = ?", problemID).Find(&solutions).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load solutions for problem %d: %w", problemID, err)
		}
		database.CacheSet(ctx, key, solutions)
	}

	stats := &ProblemStats{Problem: problem}
	results := make([]int, 0, len(solutions))
	for _, solution := range solutions {
		if solution.Result == 100 {
			stats.Solved++
		} else {
			stats.Unsolved++
		}
		if solution.UserID == viewerID {
			stats.Access = true
		}
		results = append(results, solution.Result)
	}
	stats.Scores = utils.BuildHistogram(results)
	return stats, nil
}
