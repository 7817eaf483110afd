package websocket

import (
	"sync"

	"ai-interview-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks the one realtime connection each session may have. All map
// mutation happens inside Run. Client send channels are never closed;
// shutdown goes through each client's done signal.
type Hub struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	// closeSession disconnects a session's client from the outside, used
	// by the lifecycle service on end and delete.
	closeSession chan uuid.UUID

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:      make(map[uuid.UUID]*Client),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		closeSession: make(chan uuid.UUID),
		logger:       log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.SessionID]; ok {
				// A session carries at most one connection; the newer one wins.
				old.close()
				old.Conn.Close()
			}
			h.clients[client.SessionID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "realtime channel opened", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.SessionID]; ok && current == client {
				delete(h.clients, client.SessionID)
			}
			h.mu.Unlock()
			client.close()
			h.logger.Info("Hub", "realtime channel closed", map[string]interface{}{"session_id": client.SessionID})

		case sessionID := <-h.closeSession:
			h.mu.Lock()
			client, ok := h.clients[sessionID]
			if ok {
				delete(h.clients, sessionID)
			}
			h.mu.Unlock()
			if ok {
				client.close()
				client.Conn.Close()
			}
		}
	}
}

// CloseSession disconnects the session's client, if any. Safe to call for
// sessions that never opened a channel.
func (h *Hub) CloseSession(sessionID uuid.UUID) {
	h.closeSession <- sessionID
}

// Connected reports whether a session currently has an open channel.
func (h *Hub) Connected(sessionID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}
