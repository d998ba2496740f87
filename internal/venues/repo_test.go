package venues

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
	// single connection so every query sees the same in-memory db
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleVenue(id string) models.Venue {
	return models.Venue{
		ID:           id,
		Name:         "Port de Cannes",
		Lat:          43.549,
		Lng:          7.017,
		Country:      "FR",
		Region:       "Provence-Alpes-Cote d'Azur",
		VenueType:    "marina",
		TimeZone:     "Europe/Paris",
		DataQuality:  3,
		ExternalID:   "123456",
		ExternalType: "node",
		DataSource:   "osm",
	}
}

func TestUpsertAndGet(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleVenue("cannes")))

	got, err := repo.GetByID(ctx, "cannes")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Port de Cannes", got.Name)
	assert.Equal(t, "FR", got.Country)
	assert.InDelta(t, 43.549, got.Lat, 1e-9)
	assert.False(t, got.Verified)
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo := NewRepo(testDB(t))

	got, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpsertIsIdempotentAndMovesPin(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	v := sampleVenue("cannes")
	require.NoError(t, repo.Upsert(ctx, v))
	require.NoError(t, repo.Upsert(ctx, v)) // re-import, no error

	total, err := repo.Count(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// newer extract with updated coordinates
	v.Lat, v.Lng = 43.551, 7.019
	require.NoError(t, repo.Upsert(ctx, v))

	got, err := repo.GetByID(ctx, "cannes")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 43.551, got.Lat, 1e-9)
	assert.InDelta(t, 7.019, got.Lng, 1e-9)
}

func TestUpsertKeepsVerifiedSticky(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleVenue("cannes")))

	ok, err := repo.SetVerified(ctx, "cannes", true)
	require.NoError(t, err)
	require.True(t, ok)

	// re-import from the unverified source
	require.NoError(t, repo.Upsert(ctx, sampleVenue("cannes")))

	got, err := repo.GetByID(ctx, "cannes")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Verified)
}

func TestSetVerifiedMissing(t *testing.T) {
	repo := NewRepo(testDB(t))

	ok, err := repo.SetVerified(context.Background(), "nope", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListFilters(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	cannes := sampleVenue("cannes")
	require.NoError(t, repo.Upsert(ctx, cannes))

	kiel := sampleVenue("kiel")
	kiel.Name = "Kieler Yacht-Club"
	kiel.Country = "DE"
	kiel.Region = "Schleswig-Holstein"
	kiel.VenueType = "club"
	kiel.Lat, kiel.Lng = 54.375, 10.157
	require.NoError(t, repo.Upsert(ctx, kiel))

	t.Run("keyword", func(t *testing.T) {
		items, err := repo.List(ctx, ListQuery{Q: "kieler"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "kiel", items[0].ID)
	})

	t.Run("country", func(t *testing.T) {
		items, err := repo.List(ctx, ListQuery{Country: "fr"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "cannes", items[0].ID)
	})

	t.Run("type", func(t *testing.T) {
		total, err := repo.Count(ctx, ListQuery{VenueType: "club"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("bbox", func(t *testing.T) {
		items, err := repo.List(ctx, ListQuery{
			Bounded: true,
			MinLat:  50, MaxLat: 60,
			MinLng: 5, MaxLng: 15,
		})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "kiel", items[0].ID)
	})

	t.Run("verified only", func(t *testing.T) {
		items, err := repo.List(ctx, ListQuery{VerifiedOnly: true})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
