package chat

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type incomingMessage struct {
	Text string `json:"text"`
	User string `json:"user"`
}

// HistoryHandler returns the recent messages for one venue's room.
// Mounted as GET /venues/:id/chat/history.
func HistoryHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID := strings.TrimSpace(c.Param("id"))
		if venueID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "venue id required"})
			return
		}

		history := hub.History(venueID)
		c.JSON(http.StatusOK, gin.H{
			"venue_id":  venueID,
			"occupancy": hub.Occupancy(venueID),
			"total":     len(history),
			"items":     history,
		})
	}
}

// WSHandler joins the caller to the venue's chat room. Each venue is
// one room; the room comes into existence with its first member.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID := strings.TrimSpace(c.Param("id"))
		if venueID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "venue id required"})
			return
		}

		user := strings.TrimSpace(c.Query("user"))
		if user == "" {
			user = "anon"
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		history := hub.Join(venueID, ws, user)
		for _, msg := range history {
			_ = ws.WriteJSON(msg)
		}

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			var incoming incomingMessage
			if err := json.Unmarshal(payload, &incoming); err != nil {
				// plain text frame
				text := strings.TrimSpace(string(payload))
				if text == "" {
					continue
				}
				hub.Broadcast(Message{
					Type:    MsgText,
					VenueID: venueID,
					User:    hub.User(venueID, ws),
					Text:    text,
					At:      time.Now().UTC(),
				})
				continue
			}

			text := strings.TrimSpace(incoming.Text)
			if text == "" {
				continue
			}

			msgUser := strings.TrimSpace(incoming.User)
			if msgUser == "" {
				msgUser = hub.User(venueID, ws)
			}

			hub.Broadcast(Message{
				Type:    MsgText,
				VenueID: venueID,
				User:    msgUser,
				Text:    text,
				At:      time.Now().UTC(),
			})
		}

		hub.Leave(venueID, ws)
	}
}
