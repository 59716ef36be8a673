package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/mwessels/soccer-league/internal/live"
)

// RequireWebSocketUpgrade rejects plain HTTP requests on websocket routes
// before the upgrade handler runs.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fail(c, fiber.StatusUpgradeRequired, "websocket upgrade required")
}

// LiveMatchUpdates handles GET /soccer-matches/:id/live. The connection is
// subscribed to the match's hub feed and receives every score update as a
// JSON text frame until either side closes.
func LiveMatchUpdates(hub *live.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		matchID, err := strconv.ParseUint(conn.Params("id"), 10, 32)
		if err != nil || matchID == 0 {
			return
		}

		client := &live.Client{MatchID: uint(matchID), Send: make(chan []byte, 16)}
		hub.Register(client)

		// Writer: forward hub messages until the hub drops us or the write
		// fails. Send is closed by the hub, never here. Closing the
		// connection on exit unblocks the read loop below.
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer conn.Close()
			for data := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}()

		// Reader: clients send nothing meaningful; the read loop just
		// detects the disconnect. Unregistering closes Send, which lets
		// the writer drain and exit before the handler returns.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-done
	})
}
