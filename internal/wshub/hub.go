package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"neurolearn/internal/broadcast"

	"github.com/coder/websocket"
)

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection until the context ends or the channel closes.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub fans progress and mode change messages out to every connected
// screen, keeping multiple tabs in sync.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a Hub fed by the broadcaster.
func NewHub(b *broadcast.Broadcaster) *Hub {
	h := &Hub{
		clients: make(map[string]*Client),
	}
	go func() {
		ch := b.Subscribe()
		for msg := range ch {
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("[WS] Marshal error: %v\n", err)
				continue
			}
			h.Broadcast(data)
		}
	}()
	return h
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

// Broadcast sends a message to all clients. Non-blocking: drops if a
// client's channel is full.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}
