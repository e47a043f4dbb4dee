package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"tracker/database"
	"tracker/metrics"
	"tracker/models"
	"tracker/realtime"
	"tracker/scraper"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncOutcome is the user-visible result of a sync operation
type SyncOutcome string

const (
	SyncSuccess     SyncOutcome = "success"
	SyncBadUsername SyncOutcome = "badusername"
	SyncFetchFailed SyncOutcome = "failure"
)

// deltaLimit caps the number of real entries recorded on a status update
const deltaLimit = 5

// SyncUser runs one full sync for the given account: claim the training-site
// username, fetch and parse the hub page, reconcile the parsed records
// against stored state, and append a capped status update when anything
// changed for a user that has synced before.
//
// All failure modes are detected before any persistent write: a username
// conflict, a fetch failure or a row-level parse error leave the database
// untouched. Re-running against unchanged source data writes nothing and
// emits no feed entry.
func SyncUser(ctx context.Context, user *models.User, oracUsername string, password string, fetcher scraper.Fetcher) (SyncOutcome, error) {
	startTime := time.Now()

	// make sure no-one else is using this username already
	var claimed models.User
	err := database.DB.Where("orac_username = ?", oracUsername).First(&claimed).Error
	if err == nil && claimed.ID != user.ID {
		metrics.RecordSync(string(SyncBadUsername), startTime)
		return SyncBadUsername, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check username claim: %w", err)
	}

	page, err := fetcher.FetchHubPage(ctx, oracUsername, password)
	if err != nil {
		slog.WarnContext(ctx, "hub page fetch failed", "user", user.ID, "err", err)
		metrics.RecordSync(string(SyncFetchFailed), startTime)
		return SyncFetchFailed, nil
	}

	records, err := scraper.Parse(page)
	if err != nil {
		if !errors.Is(err, scraper.ErrNoData) {
			metrics.RecordSync(string(SyncFetchFailed), startTime)
			return "", fmt.Errorf("failed to parse hub page: %w", err)
		}
		slog.InfoContext(ctx, "hub page contained no data", "user", user.ID)
	}

	syncedBefore := user.OracUsername != nil

	if user.OracUsername == nil || *user.OracUsername != oracUsername {
		ok, err := claimOracUsername(ctx, user, oracUsername)
		if err != nil {
			return "", err
		}
		if !ok {
			metrics.RecordSync(string(SyncBadUsername), startTime)
			return SyncBadUsername, nil
		}
	}

	delta, err := reconcile(ctx, user, records)
	if err != nil {
		return "", err
	}

	if len(delta) > 0 && syncedBefore {
		if err := recordStatusUpdate(ctx, user, delta); err != nil {
			return "", err
		}
	}

	metrics.RecordSync(string(SyncSuccess), startTime)
	return SyncSuccess, nil
}

// claimOracUsername stores the username on the user, reporting false when the
// unique index rejects the loser of a concurrent claim race.
func claimOracUsername(ctx context.Context, user *models.User, oracUsername string) (bool, error) {
	err := database.DB.Model(user).Update("orac_username", oracUsername).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to claim username %q: %w", oracUsername, err)
	}
	user.OracUsername = &oracUsername
	database.CacheInvalidate(ctx, database.CacheKeyUserSessionPrefix+user.ID)
	return true, nil
}

// reconcile applies the minimal set of writes for the parsed records and
// returns one delta entry per created or updated solution, in encounter
// order.
func reconcile(ctx context.Context, user *models.User, records map[int]scraper.ProblemRecord) ([]models.DeltaEntry, error) {
	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return records[ids[i]].Pos < records[ids[j]].Pos
	})

	var delta []models.DeltaEntry
	var staleKeys []string

	for _, probID := range ids {
		record := records[probID]

		// first-writer-wins: never overwrite an existing problem's name
		problem := models.Problem{ID: probID, Name: record.Name}
		if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&problem).Error; err != nil {
			return nil, fmt.Errorf("failed to create problem %d: %w", probID, err)
		}

		changed := false
		var soln models.Solution
		err := database.DB.Where("problem_id = ? AND user_id = ?", probID, user.ID).First(&soln).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			soln = models.Solution{
				ProblemID: probID,
				UserID:    user.ID,
				Result:    record.Result,
				SolveDate: record.SolveDate,
			}
			if err := database.DB.Create(&soln).Error; err != nil {
				return nil, fmt.Errorf("failed to create solution for problem %d: %w", probID, err)
			}
			// a row first seen at result 0 carries no achievement to report
			if record.Result != 0 {
				name := record.Name
				delta = append(delta, models.DeltaEntry{Name: &name, Old: -1, New: record.Result})
			}
			changed = true
		case err != nil:
			return nil, fmt.Errorf("failed to load solution for problem %d: %w", probID, err)
		case soln.Result != record.Result:
			// a solution that never reached 100 has no meaningful prior
			// score to report against
			oldResult := soln.Result
			if soln.SolveDate == nil {
				oldResult = -1
			}
			updates := map[string]interface{}{
				"result":     record.Result,
				"solve_date": record.SolveDate,
			}
			if err := database.DB.Model(&soln).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update solution for problem %d: %w", probID, err)
			}
			name := record.Name
			delta = append(delta, models.DeltaEntry{Name: &name, Old: oldResult, New: record.Result})
			changed = true
		}

		if changed {
			metrics.SolutionsChanged.Inc()
			staleKeys = append(staleKeys, database.CacheKeyProblemSolversPrefix+strconv.Itoa(probID))
		}
	}

	if len(staleKeys) > 0 {
		staleKeys = append(staleKeys, database.CacheKeyUserSolutionsPrefix+user.ID)
		database.CacheInvalidate(ctx, staleKeys...)
	}
	return delta, nil
}

// recordStatusUpdate caps the delta, appends the feed entry and pushes the
// rendered row to websocket subscribers.
func recordStatusUpdate(ctx context.Context, user *models.User, delta []models.DeltaEntry) error {
	// highest new score first; ties keep encounter order
	sort.SliceStable(delta, func(i, j int) bool {
		return delta[i].New > delta[j].New
	})
	if cut := len(delta) - deltaLimit; cut > 0 {
		delta = delta[:deltaLimit]
		delta = append(delta, models.DeltaEntry{Name: nil, Old: 0, New: cut})
	}

	payload, err := models.EncodeDelta(delta)
	if err != nil {
		return fmt.Errorf("failed to encode delta: %w", err)
	}

	update := models.StatusUpdate{UserID: user.ID, Delta: payload}
	if err := database.DB.Create(&update).Error; err != nil {
		return fmt.Errorf("failed to record status update: %w", err)
	}
	database.CacheInvalidate(ctx, database.CacheKeyFeed)

	message, err := RenderDigest(user.DisplayName(), delta)
	if err != nil {
		// the delta was just built non-empty, so this is a defect
		return fmt.Errorf("failed to render digest for fresh delta: %w", err)
	}
	realtime.BroadcastFeedEvent(realtime.FeedEvent{
		Date:    FormatFeedTime(update.Timestamp),
		Message: message,
	})
	return nil
}
