package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helmhub/internal/feed"
)

func TestRenderKnownEvents(t *testing.T) {
	venue, err := json.Marshal(feed.NewVenueVerified("cannes"))
	require.NoError(t, err)
	assert.Equal(t, "venue cannes verified", render(venue))

	del, err := json.Marshal(feed.NewFleetDelete("u1", "ilca7"))
	require.NoError(t, err)
	assert.Equal(t, "u1 fleet: removed ilca7", render(del))
}

func TestRenderPassesUnknownThrough(t *testing.T) {
	assert.Equal(t, "not json", render([]byte("not json")))
	assert.Equal(t, `{"type":"mystery"}`, render([]byte(`{"type":"mystery"}`)))
}
