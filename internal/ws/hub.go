// Package ws serves the robot side of the wire protocol: the WebSocket
// channel the dashboard keeps open, and the one-shot /cmd endpoint it
// falls back to. The simulator stands in for the firmware here.
package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newWSClient(conn *websocket.Conn) *wsClient {
	c := &wsClient{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *wsClient) close() {
	close(c.send)
}

// Hub tracks connected dashboards and fans frames out to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*wsClient]bool)}
}

func (h *Hub) add(conn *websocket.Conn) *wsClient {
	c := newWSClient(conn)
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	return c
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// Broadcast marshals v and sends it to every connected dashboard. Clients
// that cannot keep up are disconnected.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			log.Printf("ws client too slow, disconnecting")
			h.remove(c)
		}
	}
}

// ClientCount reports how many dashboards are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
