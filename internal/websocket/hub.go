// Package websocket fans inventory changes and toast notifications out to
// the open dashboard sessions, so a change made in one session shows up in
// the others without a reload.
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	domainfeed "autolot-service/internal/domain/feed"

	"go.uber.org/zap"
)

// Message is the envelope every frame sent to a session uses.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	// MessageToast carries a user-visible notification.
	MessageToast = "toast"
	// MessageInventory carries a change-feed event.
	MessageInventory = "inventory"
)

type toastPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case raw := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- raw:
				default:
					// Slow consumer, drop the frame rather than block
					// the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) send(msgType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal websocket payload", zap.Error(err))
		return
	}
	raw, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- raw:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping message",
			zap.String("type", msgType))
	}
}

// Notify broadcasts a toast notification to every open session. Satisfies
// notify.Notifier.
func (h *Hub) Notify(title, message string) {
	h.send(MessageToast, toastPayload{Title: title, Message: message})
}

// BroadcastEvent forwards a change-feed event to every open session.
func (h *Hub) BroadcastEvent(ev *domainfeed.Event) {
	h.send(MessageInventory, ev)
}
