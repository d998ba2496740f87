package feed

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastToTCPClient(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	hub.Add(server)

	done := make(chan VenueEvent, 1)
	go func() {
		sc := bufio.NewScanner(client)
		if sc.Scan() {
			var ev VenueEvent
			if err := json.Unmarshal(sc.Bytes(), &ev); err == nil {
				done <- ev
			}
		}
	}()

	hub.Broadcast(NewVenueVerified("cannes"))

	select {
	case ev := <-done:
		assert.Equal(t, EventVenueVerified, ev.Type)
		assert.Equal(t, "cannes", ev.VenueID)
		assert.False(t, ev.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestHubWelcomeFrame(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	hub.Add(server)

	done := make(chan WelcomeEvent, 1)
	go func() {
		sc := bufio.NewScanner(client)
		if sc.Scan() {
			var ev WelcomeEvent
			if err := json.Unmarshal(sc.Bytes(), &ev); err == nil {
				done <- ev
			}
		}
	}()

	hub.Welcome(server)

	select {
	case ev := <-done:
		assert.Equal(t, EventWelcome, ev.Type)
		assert.Equal(t, "helmhub", ev.Feed)
		assert.Equal(t, "tcp", ev.Transport)
		assert.Equal(t, 1, ev.Stats.TCPClients)
	case <-time.After(2 * time.Second):
		t.Fatal("no welcome frame received")
	}
}

func TestHubStats(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, Stats{}, hub.Stats())

	server, client := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	hub.Add(server)

	require.Equal(t, 1, hub.Count())
	assert.Equal(t, Stats{TCPClients: 1}, hub.Stats())

	hub.Remove(server)
	assert.Equal(t, 0, hub.Count())
}

func TestHubDropsDeadClients(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	hub.Add(server)
	_ = client.Close()
	_ = server.Close()

	hub.Broadcast(NewVenueVerified("x"))
	assert.Equal(t, 0, hub.Count())
}

func TestFleetEventConstructors(t *testing.T) {
	del := NewFleetDelete("u1", "ilca7")
	assert.Equal(t, EventFleetDelete, del.Type)
	assert.Equal(t, "u1", del.UserID)
	assert.Equal(t, "ilca7", del.ClassKey)
	assert.Empty(t, del.SailNumber)
	assert.False(t, del.At.IsZero())
}
