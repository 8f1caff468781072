package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// clientBuffer is how many unsent snapshots a client may fall behind
// before frames are dropped for it.
const clientBuffer = 8

// OverlayHub fans pipeline snapshots out to overlay WebSocket clients.
// Publishing never blocks: a client that cannot keep up loses frames,
// not the whole stream.
type OverlayHub struct {
	clients map[*websocket.Conn]chan []byte
	mu      sync.RWMutex
}

// NewOverlayHub creates an empty hub.
func NewOverlayHub() *OverlayHub {
	return &OverlayHub{
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client goes away.
func (h *OverlayHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	send := make(chan []byte, clientBuffer)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go func() {
		for msg := range send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// Reads only detect the close; clients never send anything useful.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	close(send)
	h.mu.Unlock()
}

// Publish marshals v once and hands it to every connected client. Full
// client buffers drop the message instead of queueing.
func (h *OverlayHub) Publish(v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("overlay marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, send := range h.clients {
		select {
		case send <- msg:
		default:
		}
	}
}

// ClientCount returns how many overlay clients are connected.
func (h *OverlayHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
