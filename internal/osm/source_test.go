package osm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helmhub/pkg/models"
)

type fakeSource struct {
	name  string
	items []models.Venue
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.Venue, error) {
	return f.items, f.err
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "port de cannes", normalizeName("Port de Cannes"))
	assert.Equal(t, "kieler yacht club", normalizeName("Kieler Yacht-Club!!"))
	assert.Equal(t, "", normalizeName("---"))
}

func TestCanonicalKeyPrefersExternalRef(t *testing.T) {
	v := models.Venue{Name: "Port de Cannes", ExternalID: "42", ExternalType: "node", Lat: 43.5, Lng: 7.0}
	assert.Equal(t, "node:42", canonicalKey(v))

	v.ExternalID = ""
	assert.Equal(t, "port de cannes@43.5,7.0", canonicalKey(v))
}

func TestFetchAndMergeDeduplicates(t *testing.T) {
	agg := NewAggregator(
		&fakeSource{name: "a", items: []models.Venue{
			{ID: "osm-node-42", Name: "Port de Cannes", Lat: 43.549, Lng: 7.017, ExternalID: "42", ExternalType: "node", DataQuality: 1, DataSource: "osm"},
		}},
		&fakeSource{name: "b", items: []models.Venue{
			{ID: "seed-cannes", Name: "Port de Cannes", Lat: 43.550, Lng: 7.018, ExternalID: "42", ExternalType: "node", DataQuality: 3, Country: "FR", TimeZone: "Europe/Paris", DataSource: "seed"},
		}},
	)

	out, err := agg.FetchAndMerge(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	v := out[0]
	// higher quality record wins coordinates and identity
	assert.Equal(t, "seed-cannes", v.ID)
	assert.InDelta(t, 43.550, v.Lat, 1e-9)
	assert.Equal(t, "FR", v.Country)
	assert.Equal(t, 3, v.DataQuality)
}

func TestFetchAndMergeSurvivesBrokenSource(t *testing.T) {
	agg := NewAggregator(
		&fakeSource{name: "broken", err: errors.New("boom")},
		&fakeSource{name: "ok", items: []models.Venue{
			{ID: "kiel", Name: "Kieler Yacht-Club", Lat: 54.375, Lng: 10.157, DataQuality: 2},
		}},
	)

	out, err := agg.FetchAndMerge(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "kiel", out[0].ID)
}

func TestMergeVenueStickyVerified(t *testing.T) {
	base := models.Venue{ID: "a", Name: "X", DataQuality: 2, Verified: true}
	incoming := models.Venue{ID: "b", Name: "X", DataQuality: 3}

	merged := mergeVenue(base, incoming)
	assert.Equal(t, "b", merged.ID) // higher quality wins
	assert.True(t, merged.Verified) // but verified never unsets
}

func TestMergeVenueFillsMissing(t *testing.T) {
	base := models.Venue{ID: "a", Name: "X", DataQuality: 3}
	incoming := models.Venue{ID: "b", Name: "X", DataQuality: 1, Country: "DE", Region: "SH", VenueType: "club", TimeZone: "Europe/Berlin", ExternalID: "7", ExternalType: "node", DataSource: "osm"}

	merged := mergeVenue(base, incoming)
	assert.Equal(t, "a", merged.ID)
	assert.Equal(t, "DE", merged.Country)
	assert.Equal(t, "SH", merged.Region)
	assert.Equal(t, "club", merged.VenueType)
	assert.Equal(t, "Europe/Berlin", merged.TimeZone)
	assert.Equal(t, "node:7", canonicalKey(merged))
	assert.Equal(t, "osm", merged.DataSource)
}
