package ws

import (
	"sync"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/services/dto"
)

// Event is the envelope for every frame pushed to a connected client.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const (
	EventNewMessage = "new_message"
)

type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *WebSocketManager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if old, ok := m.clients[client.UserID]; ok {
				close(old.Send)
			}
			m.clients[client.UserID] = client
			total := len(m.clients)
			m.mu.Unlock()
			logger.GetLogger().Debug("ws client registered", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.UserID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.GetLogger().Debug("ws client unregistered", "user_id", client.UserID, "total", total)
		}
	}
}

// DeliverMessage pushes a chat message to the recipient if they are connected.
// Implements services.MessageSink.
func (m *WebSocketManager) DeliverMessage(recipientID string, message dto.MessageDTO) {
	m.send(recipientID, Event{Type: EventNewMessage, Payload: message})
}

func (m *WebSocketManager) send(userID string, event Event) {
	// The lock is held across the channel send: Run closes Send under the
	// write lock, so releasing early would race a close with the send below.
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- event:
	default:
		// Send buffer full, drop the connection.
		go func() { m.unregister <- client }()
	}
}

func (m *WebSocketManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *WebSocketManager) IsClientConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
