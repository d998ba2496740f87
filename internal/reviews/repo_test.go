package reviews

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helmhub/pkg/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	_, err = db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'skipper', 'skipper@example.com', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO venues (id, name, lat, lng) VALUES ('cannes', 'Port de Cannes', 43.549, 7.017)`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAndListByVenue(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "u1", "cannes", 5, "great starting lines")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Positive(t, created.ID)
	assert.Equal(t, 5, created.Rating)
	assert.False(t, created.Timestamp.IsZero())

	items, err := repo.ListByVenue(ctx, "cannes", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "great starting lines", items[0].Text)
	assert.Equal(t, "skipper", items[0].Username)
}

func TestVenueRating(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	rating, err := repo.Rating(ctx, "cannes")
	require.NoError(t, err)
	assert.Equal(t, 0, rating.Reviews)
	assert.Zero(t, rating.AvgRating)

	_, err = repo.Create(ctx, "u1", "cannes", 5, "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u1", "cannes", 2, "")
	require.NoError(t, err)

	rating, err = repo.Rating(ctx, "cannes")
	require.NoError(t, err)
	assert.Equal(t, 2, rating.Reviews)
	assert.InDelta(t, 3.5, rating.AvgRating, 0.001)
	assert.Equal(t, "cannes", rating.VenueID)
}

func TestDeleteOwnerOnly(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "u1", "cannes", 4, "")
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, created.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
