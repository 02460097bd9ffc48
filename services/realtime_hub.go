package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one open socket, keyed by the couple whose feed it follows.
type WSClient struct {
	CoupleID uint
	Conn     *websocket.Conn

	// gorilla/websocket allows one concurrent writer per connection, and
	// both the hub (activity frames) and the controller's keepalive
	// (pings) write to this socket.
	writeMu sync.Mutex
}

// Send is the only path that may write to Conn.
func (c *WSClient) Send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans activity events out to every open socket of a couple.
// Both partners may hold several connections at once (phone + laptop).
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.CoupleID] == nil {
		h.clients[c.CoupleID] = make(map[*WSClient]struct{})
	}
	h.clients[c.CoupleID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.CoupleID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.CoupleID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) BroadcastActivity(coupleID uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[coupleID] {
		_ = c.Send(websocket.TextMessage, msg)
	}
}
