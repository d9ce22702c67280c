package websockets

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Upgrader is the WebSocket upgrader configuration
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin controls cross-origin requests. The feed sits behind
	// admin auth; origins are left open for campus-network deployments.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
