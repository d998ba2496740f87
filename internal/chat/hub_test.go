package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyVenueRoom() *venueRoom {
	return &venueRoom{members: make(map[*websocket.Conn]string)}
}

func TestBroadcastUnknownVenueIsDropped(t *testing.T) {
	hub := NewHub(10)

	hub.Broadcast(Message{Type: MsgText, VenueID: "cannes", User: "a", Text: "anyone racing?"})
	assert.Empty(t, hub.History("cannes"))
}

func TestBroadcastStoresHistory(t *testing.T) {
	hub := NewHub(10)
	hub.venues["cannes"] = emptyVenueRoom()

	hub.Broadcast(Message{Type: MsgText, VenueID: "cannes", User: "a", Text: "anyone racing?"})
	hub.Broadcast(Message{Type: MsgJoin, VenueID: "cannes", User: "b"}) // join notices are not history

	history := hub.History("cannes")
	require.Len(t, history, 1)
	assert.Equal(t, "anyone racing?", history[0].Text)
	assert.Equal(t, "cannes", history[0].VenueID)
	assert.False(t, history[0].At.IsZero())
}

func TestHistoryBounded(t *testing.T) {
	hub := NewHub(2)
	hub.venues["kiel"] = emptyVenueRoom()

	for i := 0; i < 5; i++ {
		hub.Broadcast(Message{Type: MsgText, VenueID: "kiel", User: "a", Text: fmt.Sprintf("msg %d", i), At: time.Now()})
	}

	history := hub.History("kiel")
	require.Len(t, history, 2)
	assert.Equal(t, "msg 3", history[0].Text)
	assert.Equal(t, "msg 4", history[1].Text)
}

func TestHistorySurvivesEmptyRoom(t *testing.T) {
	hub := NewHub(10)
	hub.venues["kiel"] = emptyVenueRoom()

	hub.Broadcast(Message{Type: MsgText, VenueID: "kiel", User: "a", Text: "breeze is up"})

	assert.Equal(t, 0, hub.Occupancy("kiel"))
	require.Len(t, hub.History("kiel"), 1)
}

func TestOccupancyUnknownVenue(t *testing.T) {
	hub := NewHub(10)
	assert.Equal(t, 0, hub.Occupancy("nowhere"))
}

func TestHistoryDefaultSize(t *testing.T) {
	hub := NewHub(0)
	assert.Equal(t, defaultHistorySize, hub.historySize)
}
