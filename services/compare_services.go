package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tracker/database"
	"tracker/models"
	"tracker/utils"

	"gorm.io/gorm"
)

// ErrUnknownUser reports a comparison target with no claimed username
var ErrUnknownUser = errors.New("no user with that username")

// ComparisonRow is one problem where the two users' results differ
type ComparisonRow struct {
	Problem models.Problem `json:"problem"`
	Us      string         `json:"us"`
	Them    string         `json:"them"`
}

// Comparison is the pairwise view between the caller and another user
type Comparison struct {
	Us         string          `json:"us"`
	Them       string          `json:"them"`
	UsCommon   string          `json:"us_common"`
	ThemCommon string          `json:"them_common"`
	Table      []ComparisonRow `json:"table"`
}

// CompareUsers builds the comparison between the caller and the user owning
// the given training-site username: every common problem where the results
// differ, plus each side's solved ratio over the common set.
func CompareUsers(ctx context.Context, us *models.User, themUsername string) (*Comparison, error) {
	var them models.User
	err := database.DB.Where("orac_username = ?", themUsername).First(&them).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", themUsername, err)
	}

	ourSolutions, err := GetSolutionsForUser(ctx, us.ID)
	if err != nil {
		return nil, err
	}
	theirSolutions, err := GetSolutionsForUser(ctx, them.ID)
	if err != nil {
		return nil, err
	}

	theirByProblem := make(map[int]models.Solution, len(theirSolutions))
	for _, solution := range theirSolutions {
		theirByProblem[solution.ProblemID] = solution
	}

	usCommonCount := 0
	themCommonCount := 0
	commonTotal := 0

	var table []ComparisonRow
	for _, ours := range ourSolutions {
		theirs, shared := theirByProblem[ours.ProblemID]
		if !shared {
			continue
		}

		if ours.Result != theirs.Result {
			row := ComparisonRow{Us: resultString(ours), Them: resultString(theirs)}
			if ours.Problem != nil {
				row.Problem = *ours.Problem
			}
			table = append(table, row)
		}

		if ours.Result == 100 {
			usCommonCount++
		}
		if theirs.Result == 100 {
			themCommonCount++
		}
		commonTotal++
	}

	sort.Slice(table, func(i, j int) bool {
		return table[i].Problem.Name < table[j].Problem.Name
	})

	return &Comparison{
		Us:         us.DisplayName(),
		Them:       them.DisplayName(),
		UsCommon:   utils.FormatRatio(usCommonCount, commonTotal),
		ThemCommon: utils.FormatRatio(themCommonCount, commonTotal),
		Table:      table,
	}, nil
}

// resultString renders one side of a comparison cell
func resultString(solution models.Solution) string {
	if solution.SolveDate == nil && solution.Result == 0 {
		return "Not attempted"
	}
	return fmt.Sprintf("%d%%", solution.Result)
}
