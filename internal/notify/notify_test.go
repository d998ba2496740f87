package notify

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	addr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9999}

	reg.Register("u1", addr)
	reg.Register("", addr)     // ignored
	reg.Register("u2", nil)    // ignored
	reg.Register("u1", addr)   // overwrite, not duplicate

	clients := reg.Snapshot()
	require.Len(t, clients, 1)
	assert.Equal(t, "u1", clients[0].UserID)

	reg.Remove("u1")
	assert.Empty(t, reg.Snapshot())
}

func TestParseRegisterMessage(t *testing.T) {
	msg, err := parseRegisterMessage([]byte(`{"type":"register","user_id":"u1"}`))
	require.NoError(t, err)
	assert.Equal(t, RegisterMessageType, msg.Type)
	assert.Equal(t, "u1", msg.UserID)

	_, err = parseRegisterMessage([]byte(`{"type":"register"}`))
	assert.Error(t, err)

	_, err = parseRegisterMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestServerCloseUnblocksRun(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewRegistry(), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	// wait for the socket to come up
	require.Eventually(t, func() bool {
		return srv.liveConn() != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestServerCloseBeforeRun(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewRegistry(), nil)
	require.NoError(t, srv.Close())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return for a closed server")
	}
}

func TestBroadcastAfterClose(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewRegistry(), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()
	require.Eventually(t, func() bool {
		return srv.liveConn() != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Close())
	<-done

	// must not panic or write on the closed socket
	srv.BroadcastVenueVerified("venue-1")
	assert.Nil(t, srv.liveConn())
}
