package services

import (
	"context"
	"fmt"
	"testing"

	"tracker/database"
	"tracker/metrics"
	"tracker/models"
	"tracker/scraper"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func countStatusUpdates(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.StatusUpdate{}).Count(&count).Error)
	return count
}

func TestFirstSyncCreatesNoFeedEntry(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	ctx := context.Background()

	fetcher := fakeFetcher{page: hubPage(
		problemRow(1, "Cloud Cover", "Finished on Mon 05 Mar 2012, 3 attempts"),
		problemRow(2, "Snap Dragons", "40% attempted"),
		problemRow(3, "Frog Hopping", "New"),
	)}

	outcome, err := SyncUser(ctx, user, "alice", "secret", fetcher)
	require.NoError(t, err)
	require.Equal(t, SyncSuccess, outcome)

	require.NotNil(t, user.OracUsername)
	require.Equal(t, "alice", *user.OracUsername)

	var solutions []models.Solution
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).Find(&solutions).Error)
	require.Len(t, solutions, 3)

	var problems []models.Problem
	require.NoError(t, database.DB.Find(&problems).Error)
	require.Len(t, problems, 3)

	// a first-ever sync has no "before" state to report against
	require.EqualValues(t, 0, countStatusUpdates(t))
}

func TestSyncIsIdempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	ctx := context.Background()

	fetcher := fakeFetcher{page: hubPage(
		problemRow(1, "Cloud Cover", "Finished on Mon 05 Mar 2012, 3 attempts"),
		problemRow(2, "Snap Dragons", "40% attempted"),
	)}

	outcome, err := SyncUser(ctx, user, "alice", "secret", fetcher)
	require.NoError(t, err)
	require.Equal(t, SyncSuccess, outcome)

	outcome, err = SyncUser(ctx, user, "alice", "secret", fetcher)
	require.NoError(t, err)
	require.Equal(t, SyncSuccess, outcome)

	var solutions []models.Solution
	require.NoError(t, database.DB.Find(&solutions).Error)
	require.Len(t, solutions, 2)
	require.EqualValues(t, 0, countStatusUpdates(t))
}

func TestChangedResultRecordsDelta(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	ctx := context.Background()

	before := fakeFetcher{page: hubPage(problemRow(1, "Cloud Cover", "45% attempted"))}
	_, err := SyncUser(ctx, user, "alice", "secret", before)
	require.NoError(t, err)

	after := fakeFetcher{page: hubPage(problemRow(1, "Cloud Cover", "Finished on Mon 05 Mar 2012, 9 attempts"))}
	outcome, err := SyncUser(ctx, user, "alice", "secret", after)
	require.NoError(t, err)
	require.Equal(t, SyncSuccess, outcome)

	var solution models.Solution
	require.NoError(t, database.DB.First(&solution, "problem_id = ?", 1).Error)
	require.Equal(t, 100, solution.Result)
	require.NotNil(t, solution.SolveDate)

	var update models.StatusUpdate
	require.NoError(t, database.DB.First(&update).Error)
	entries, err := models.DecodeDelta(update.Delta)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// never finished before, so the prior partial score is not reported
	require.Equal(t, "Cloud Cover", *entries[0].Name)
	require.Equal(t, -1, entries[0].Old)
	require.Equal(t, 100, entries[0].New)
}

func TestRegressionKeepsRealOldResult(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	ctx := context.Background()

	before := fakeFetcher{page: hubPage(problemRow(1, "Cloud Cover", "Finished on Mon 05 Mar 2012, 3 attempts"))}
	_, err := SyncUser(ctx, user, "alice", "secret", before)
	require.NoError(t, err)

	after := fakeFetcher{page: hubPage(problemRow(1, "Cloud Cover", "60% attempted"))}
	_, err = SyncUser(ctx, user, "alice", "secret", after)
	require.NoError(t, err)

	var update models.StatusUpdate
	require.NoError(t, database.DB.First(&update).Error)
	entries, err := models.DecodeDelta(update.Delta)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 100, entries[0].Old)
	require.Equal(t, 60, entries[0].New)
}

func TestDeltaCappedAtFiveWithTrailer(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	ctx := context.Background()

	var initial []string
	for i := 1; i <= 8; i++ {
		initial = append(initial, problemRow(i, fmt.Sprintf("Problem %d", i), "New"))
	}
	_, err := SyncUser(ctx, user, "alice", "secret", fakeFetcher{page: hubPage(initial...)})
	require.NoError(t, err)

	var changed []string
	for i := 1; i <= 8; i++ {
		changed = append(changed, problemRow(i, fmt.Sprintf("Problem %d", i), fmt.Sprintf("%d%% attempted", i*10)))
	}
	_, err = SyncUser(ctx, user, "alice", "secret", fakeFetcher{page: hubPage(changed...)})
	require.NoError(t, err)

	var update models.StatusUpdate
	require.NoError(t, database.DB.First(&update).Error)
	entries, err := models.DecodeDelta(update.Delta)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	// top five by new score, highest first
	for i, want := range []int{80, 70, 60, 50, 40} {
		require.Equal(t, want, entries[i].New)
		require.NotNil(t, entries[i].Name)
	}

	trailer := entries[5]
	require.True(t, trailer.IsTrailer())
	require.Equal(t, 0, trailer.Old)
	require.Equal(t, 3, trailer.New)
}

func TestClaimedUsernameRejectedBeforeWrites(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	ctx := context.Background()

	page := hubPage(problemRow(1, "Cloud Cover", "New"))
	_, err := SyncUser(ctx, alice, "alice", "secret", fakeFetcher{page: page})
	require.NoError(t, err)

	outcome, err := SyncUser(ctx, bob, "alice", "secret", fakeFetcher{page: page})
	require.NoError(t, err)
	require.Equal(t, SyncBadUsername, outcome)

	var count int64
	require.NoError(t, database.DB.Model(&models.Solution{}).Where("user_id = ?", bob.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, "id = ?", bob.ID).Error)
	require.Nil(t, fresh.OracUsername)
}

func TestFetchFailurePerformsNoWrites(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	outcome, err := SyncUser(context.Background(), user, "alice", "wrong", fakeFetcher{err: scraper.ErrFetchFailed})
	require.NoError(t, err)
	require.Equal(t, SyncFetchFailed, outcome)

	var count int64
	require.NoError(t, database.DB.Model(&models.Solution{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, "id = ?", user.ID).Error)
	require.Nil(t, fresh.OracUsername)
}

func TestEmptyPageSyncsNothing(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	outcome, err := SyncUser(context.Background(), user, "alice", "secret", fakeFetcher{page: "<html><body></body></html>"})
	require.NoError(t, err)
	require.Equal(t, SyncSuccess, outcome)

	var count int64
	require.NoError(t, database.DB.Model(&models.Solution{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
	require.EqualValues(t, 0, countStatusUpdates(t))
}

func TestNewProblemRowAddsNoFeedEntry(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	ctx := context.Background()

	before := fakeFetcher{page: hubPage(problemRow(1, "Cloud Cover", "40% attempted"))}
	_, err := SyncUser(ctx, user, "alice", "secret", before)
	require.NoError(t, err)

	after := fakeFetcher{page: hubPage(
		problemRow(1, "Cloud Cover", "40% attempted"),
		problemRow(2, "Snap Dragons", "New"),
	)}
	outcome, err := SyncUser(ctx, user, "alice", "secret", after)
	require.NoError(t, err)
	require.Equal(t, SyncSuccess, outcome)

	var solutions []models.Solution
	require.NoError(t, database.DB.Find(&solutions).Error)
	require.Len(t, solutions, 2)
	require.EqualValues(t, 0, countStatusUpdates(t))
}

func TestClaimRaceLoserReportsConflict(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	claimUsername(t, alice, "alice")

	ok, err := claimOracUsername(context.Background(), bob, "alice")
	require.NoError(t, err)
	require.False(t, ok)

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, "id = ?", bob.ID).Error)
	require.Nil(t, fresh.OracUsername)
}

func TestParseFailureCountsAsFailedSync(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	failures := testutil.ToFloat64(metrics.SyncTotal.WithLabelValues(string(SyncFetchFailed)))

	page := hubPage(problemRow(1, "Broken", "Attempted"))
	_, err := SyncUser(context.Background(), user, "alice", "secret", fakeFetcher{page: page})
	require.Error(t, err)

	require.Equal(t, failures+1, testutil.ToFloat64(metrics.SyncTotal.WithLabelValues(string(SyncFetchFailed))))
}

func TestProblemNameFirstWriterWins(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	ctx := context.Background()

	_, err := SyncUser(ctx, alice, "alice", "secret", fakeFetcher{page: hubPage(problemRow(1, "Original Name", "New"))})
	require.NoError(t, err)

	_, err = SyncUser(ctx, bob, "bob", "secret", fakeFetcher{page: hubPage(problemRow(1, "Renamed", "New"))})
	require.NoError(t, err)

	var problem models.Problem
	require.NoError(t, database.DB.First(&problem, "id = ?", 1).Error)
	require.Equal(t, "Original Name", problem.Name)
}
