package feed

import (
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

// Hub fans fleet and venue events out to every connected feed client,
// over raw TCP (newline-delimited JSON) and over WebSocket. A client
// that cannot be written to is dropped on the spot; slow consumers
// must not stall the handlers that publish.
type Hub struct {
	mu   sync.Mutex
	tcp  map[net.Conn]struct{}
	wses map[*websocket.Conn]struct{}
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub() *Hub {
	return &Hub{
		tcp:  make(map[net.Conn]struct{}),
		wses: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Add(conn net.Conn) {
	h.mu.Lock()
	h.tcp[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.tcp, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) AddWS(ws *websocket.Conn) {
	h.mu.Lock()
	h.wses[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.wses, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Broadcast marshals the event once and writes the frame to every
// client. Intended for FleetEvent and VenueEvent values.
func (h *Hub) Broadcast(ev any) {
	frame, err := json.Marshal(ev)
	if err != nil {
		return
	}
	frame = append(frame, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.tcp {
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := c.Write(frame); err != nil {
			_ = c.Close()
			delete(h.tcp, c)
		}
	}

	for ws := range h.wses {
		_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
			_ = ws.Close()
			delete(h.wses, ws)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tcp)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.tcp),
		WSClients:  len(h.wses),
	}
}

// Welcome sends the greeting frame to a freshly accepted TCP client.
func (h *Hub) Welcome(conn net.Conn) {
	frame, err := json.Marshal(newWelcome("tcp", h.Stats()))
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, _ = conn.Write(append(frame, '\n'))
}

// WelcomeWS sends the greeting frame to a freshly upgraded WebSocket.
func (h *Hub) WelcomeWS(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = ws.WriteJSON(newWelcome("websocket", h.Stats()))
}
