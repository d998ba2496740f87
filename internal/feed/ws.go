package feed

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // OK for demo; restrict in production
	},
}

// WSHandler subscribes the caller to the live feed. The feed is
// one-way: after the welcome frame the client only ever receives
// fleet and venue events, and anything it sends is discarded.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.AddWS(ws)
		log.Printf("[ws-feed] subscriber connected: %s", ws.RemoteAddr())

		hub.WelcomeWS(ws)

		// Drain until the client goes away.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		log.Printf("[ws-feed] subscriber disconnected: %s", ws.RemoteAddr())
	}
}
