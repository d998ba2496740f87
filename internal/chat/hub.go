package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultHistorySize = 50

// Frame types on a venue chat room.
const (
	MsgText  = "message"
	MsgJoin  = "user_join"
	MsgLeave = "user_leave"
)

// Message is one chat frame, always bound to a venue. Only MsgText
// frames enter the history; join/leave notices are transient.
type Message struct {
	Type    string    `json:"type"`
	VenueID string    `json:"venue_id"`
	User    string    `json:"user"`
	Text    string    `json:"text,omitempty"`
	At      time.Time `json:"at"`
}

// venueRoom holds everyone currently talking at one venue plus the
// recent messages shown to whoever walks in next.
type venueRoom struct {
	members map[*websocket.Conn]string
	history []Message
}

type Hub struct {
	mu          sync.Mutex
	venues      map[string]*venueRoom
	historySize int
}

func NewHub(historySize int) *Hub {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Hub{
		venues:      make(map[string]*venueRoom),
		historySize: historySize,
	}
}

// Join adds the connection to the venue's room, creating the room on
// first member, and returns the history to replay to the newcomer.
func (h *Hub) Join(venueID string, ws *websocket.Conn, user string) []Message {
	var history []Message
	h.mu.Lock()
	r := h.venueLocked(venueID)
	r.members[ws] = user
	history = append(history, r.history...)
	h.mu.Unlock()

	h.Broadcast(Message{
		Type:    MsgJoin,
		VenueID: venueID,
		User:    user,
		At:      time.Now().UTC(),
	})

	return history
}

// Leave removes the connection. An emptied room keeps its history: the
// venue still exists even when nobody is talking there.
func (h *Hub) Leave(venueID string, ws *websocket.Conn) {
	var user string
	h.mu.Lock()
	if r, ok := h.venues[venueID]; ok {
		if u, exists := r.members[ws]; exists {
			user = u
		}
		delete(r.members, ws)
	}
	h.mu.Unlock()

	_ = ws.Close()

	if user != "" {
		h.Broadcast(Message{
			Type:    MsgLeave,
			VenueID: venueID,
			User:    user,
			At:      time.Now().UTC(),
		})
	}
}

// Broadcast delivers the frame to everyone at the venue. Text frames
// are recorded into the bounded history first; a frame for a venue
// with no room is dropped.
func (h *Hub) Broadcast(msg Message) {
	if msg.At.IsZero() {
		msg.At = time.Now().UTC()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.venues[msg.VenueID]
	if !ok {
		return
	}

	if msg.Type == MsgText {
		r.history = append(r.history, msg)
		if len(r.history) > h.historySize {
			r.history = r.history[len(r.history)-h.historySize:]
		}
	}

	for ws := range r.members {
		if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = ws.Close()
			delete(r.members, ws)
		}
	}
}

func (h *Hub) History(venueID string) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.venues[venueID]; ok {
		return append([]Message(nil), r.history...)
	}
	return nil
}

// Occupancy reports how many connections are at the venue right now.
func (h *Hub) Occupancy(venueID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.venues[venueID]; ok {
		return len(r.members)
	}
	return 0
}

func (h *Hub) User(venueID string, ws *websocket.Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.venues[venueID]; ok {
		return r.members[ws]
	}
	return ""
}

func (h *Hub) venueLocked(venueID string) *venueRoom {
	r, ok := h.venues[venueID]
	if !ok {
		r = &venueRoom{members: make(map[*websocket.Conn]string)}
		h.venues[venueID] = r
	}
	return r
}
