package logbook

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helmhub/pkg/database"
	"helmhub/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	_, err = db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'skipper', 'skipper@example.com', 'x')`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAddAndList(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	wind := 14
	require.NoError(t, repo.Add(ctx, models.LogEntry{
		UserID:   "u1",
		VenueID:  "kiel",
		ClassKey: "ilca7",
		WindKts:  &wind,
		Notes:    "shifty westerly",
	}))
	require.NoError(t, repo.Add(ctx, models.LogEntry{
		UserID:   "u1",
		VenueID:  "cannes",
		ClassKey: "dragon",
		At:       time.Now().UTC().Add(time.Minute),
	}))

	items, total, err := repo.List(ctx, "u1", "", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	// newest first
	assert.Equal(t, "cannes", items[0].VenueID)
	assert.Nil(t, items[0].WindKts)
	require.NotNil(t, items[1].WindKts)
	assert.Equal(t, 14, *items[1].WindKts)
}

func TestListFilterByVenue(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, models.LogEntry{UserID: "u1", VenueID: "kiel", ClassKey: "ilca7"}))
	require.NoError(t, repo.Add(ctx, models.LogEntry{UserID: "u1", VenueID: "cannes", ClassKey: "dragon"}))

	items, total, err := repo.List(ctx, "u1", "kiel", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "kiel", items[0].VenueID)
}
