package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tracker/database"
	"tracker/models"
)

// ErrEmptyDelta reports a delta with no renderable achievements. Deltas are
// only recorded when something changed, so hitting this means a defect, not
// bad user input.
var ErrEmptyDelta = errors.New("delta contains no achievements")

// FeedRow is one rendered feed entry
type FeedRow struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

const feedLimit = 5

// Feed timestamps are displayed in the training site's local time, which the
// upstream renders as a fixed +11h shift from stored time.
const feedTimeOffset = 11 * time.Hour

const feedTimeLayout = "03:04PM Monday 02 January 2006"

// RenderDigest turns a capped delta into a single English sentence, e.g.
// "alice solved Foo and achieved a new personal best of 60% in Bar."
func RenderDigest(displayName string, entries []models.DeltaEntry) (string, error) {
	omitted := 0
	if n := len(entries); n > 0 && entries[n-1].IsTrailer() {
		omitted = entries[n-1].New
		entries = entries[:n-1]
	}

	var solved []string
	var boosted []string
	for _, entry := range entries {
		if entry.Name == nil {
			return "", fmt.Errorf("%w: trailer entry not in last position", ErrEmptyDelta)
		}
		if entry.New == 100 {
			solved = append(solved, *entry.Name)
		} else {
			boosted = append(boosted, fmt.Sprintf("%d%% in %s", entry.New, *entry.Name))
		}
	}

	var achievements []string
	if len(solved) > 0 {
		achievements = append(achievements, "solved "+joinList(solved))
	}
	if len(boosted) > 0 {
		achievements = append(achievements, "achieved a new personal best of "+joinList(boosted))
	}
	if len(achievements) == 0 {
		return "", ErrEmptyDelta
	}

	sentence := displayName + " " + strings.Join(achievements, " and ")
	if omitted > 0 {
		sentence += fmt.Sprintf(" (and %d more)", omitted)
	}
	return sentence + ".", nil
}

// joinList renders an English list: "A", "A and B", "A, B and C"
func joinList(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// FormatFeedTime renders a feed timestamp in the site's local time
func FormatFeedTime(t time.Time) string {
	return t.Add(feedTimeOffset).Format(feedTimeLayout)
}

// GetRecentFeed returns the most recent rendered feed rows, newest first,
// read-through cached until the next status update is appended.
func GetRecentFeed(ctx context.Context) ([]FeedRow, error) {
	var rows []FeedRow
	if database.CacheGet(ctx, database.CacheKeyFeed, &rows) {
		return rows, nil
	}

	var updates []models.StatusUpdate
	err := database.DB.Preload("User").Order("timestamp desc").Limit(feedLimit).Find(&updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status updates: %w", err)
	}

	rows = make([]FeedRow, 0, len(updates))
	for _, update := range updates {
		entries, err := models.DecodeDelta(update.Delta)
		if err != nil {
			slog.WarnContext(ctx, "skipping undecodable status update", "id", update.ID, "err", err)
			continue
		}
		displayName := ""
		if update.User != nil {
			displayName = update.User.DisplayName()
		}
		message, err := RenderDigest(displayName, entries)
		if err != nil {
			return nil, fmt.Errorf("status update %d violates the delta contract: %w", update.ID, err)
		}
		rows = append(rows, FeedRow{Date: FormatFeedTime(update.Timestamp), Message: message})
	}

	database.CacheSet(ctx, database.CacheKeyFeed, rows)
	return rows, nil
}
