package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"tracker/database"
	"tracker/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global database handle at a fresh in-memory
// database. The redis handle stays nil, so the cache always misses.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
	database.REDIS = nil
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hashed"}
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

type fakeFetcher struct {
	page string
	err  error
}

func (f fakeFetcher) FetchHubPage(ctx context.Context, username, password string) (string, error) {
	return f.page, f.err
}

func hubPage(rows ...string) string {
	var b strings.Builder
	b.WriteString(`<table><tr><td class="expfirst"><a name="set1">Training</a></td></tr>`)
	for _, row := range rows {
		b.WriteString(row)
	}
	b.WriteString("</table>")
	return b.String()
}

func problemRow(id int, name string, status string) string {
	return fmt.Sprintf(
		`<tr><td><a href="problem.pl?set=set1&problemid=%d">%s</a></td><td class="exp">%s</td></tr>`,
		id, name, status,
	)
}
