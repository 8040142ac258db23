package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a websocket connection to the hub and blocks until the
// peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn) {
	client := NewClient(hub, c)
	if !hub.Register(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
