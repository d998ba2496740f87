package fleet

import (
	"context"
	"database/sql"
	"testing"

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
	// fleet rows reference users
	_, err = db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'skipper', 'skipper@example.com', 'x')`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsertGetDelete(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	item := models.FleetItem{
		UserID:     "u1",
		ClassKey:   "dragon",
		SailNumber: "GER 1162",
		BoatName:   "Feuerdrache",
	}
	require.NoError(t, repo.Upsert(ctx, item))

	got, err := repo.Get(ctx, "u1", "dragon")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "GER 1162", got.SailNumber)
	assert.False(t, got.UpdatedAt.IsZero())

	// second upsert overwrites, does not duplicate
	item.BoatName = "Drache II"
	require.NoError(t, repo.Upsert(ctx, item))

	items, total, err := repo.List(ctx, "u1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Drache II", items[0].BoatName)

	ok, err := repo.Delete(ctx, "u1", "dragon")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.Get(ctx, "u1", "dragon")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteMissing(t *testing.T) {
	repo := NewRepo(testDB(t))

	ok, err := repo.Delete(context.Background(), "u1", "j70")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListEmpty(t *testing.T) {
	repo := NewRepo(testDB(t))

	items, total, err := repo.List(context.Background(), "u1", 0, -5)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
