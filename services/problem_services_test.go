package services

import (
	"context"
	"fmt"
	"testing"

	"tracker/models"
	"tracker/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func namedProblems(n int) []models.Problem {
	problems := make([]models.Problem, n)
	for i := range problems {
		problems[i] = models.Problem{ID: i + 1, Name: fmt.Sprintf("Problem %02d", i+1)}
	}
	return problems
}

func TestSplitInThirds(t *testing.T) {
	cases := []struct {
		total int
		want  [3]int
	}{
		{0, [3]int{0, 0, 0}},
		{1, [3]int{1, 0, 0}},
		{2, [3]int{1, 1, 0}},
		{3, [3]int{1, 1, 1}},
		{6, [3]int{2, 2, 2}},
		{7, [3]int{3, 2, 2}},
		{8, [3]int{3, 3, 2}},
	}
	for _, tc := range cases {
		columns := SplitInThirds(namedProblems(tc.total))
		got := [3]int{len(columns[0]), len(columns[1]), len(columns[2])}
		require.Equal(t, tc.want, got, "total %d", tc.total)
	}
}

func TestSplitInThirdsPreservesOrder(t *testing.T) {
	problems := namedProblems(7)
	columns := SplitInThirds(problems)

	var flattened []models.Problem
	for _, column := range columns {
		flattened = append(flattened, column...)
	}
	require.Equal(t, problems, flattened)
}

func TestGetProblemsForUserSortedByName(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	createSolution(t, user, 1, "Zebra Crossing", 100, true)
	createSolution(t, user, 2, "Ant March", 40, false)
	createSolution(t, user, 3, "Mole Tunnels", 0, false)

	problems, err := GetProblemsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, problems, 3)
	require.Equal(t, "Ant March", problems[0].Name)
	require.Equal(t, "Mole Tunnels", problems[1].Name)
	require.Equal(t, "Zebra Crossing", problems[2].Name)
}

func TestGetProblemStats(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	carol := createTestUser(t, "carol@example.com")

	createSolution(t, alice, 1, "Cloud Cover", 100, true)
	createSolution(t, bob, 1, "Cloud Cover", 40, false)
	createSolution(t, carol, 1, "Cloud Cover", 40, false)

	stats, err := GetProblemStats(context.Background(), 1, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Cloud Cover", stats.Problem.Name)
	require.Equal(t, 1, stats.Solved)
	require.Equal(t, 2, stats.Unsolved)
	require.True(t, stats.Access)
	require.Equal(t, []utils.ScoreBucket{{Result: 100, Count: 1}, {Result: 40, Count: 2}}, stats.Scores)
}

func TestGetProblemStatsViewerWithoutSolution(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")

	createSolution(t, alice, 1, "Cloud Cover", 100, true)

	stats, err := GetProblemStats(context.Background(), 1, bob.ID)
	require.NoError(t, err)
	require.False(t, stats.Access)
}

func TestGetProblemStatsUnknownProblem(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	_, err := GetProblemStats(context.Background(), 999, user.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
