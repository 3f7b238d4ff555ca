package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 8192
)

type incomingFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan Event

	manager     *WebSocketManager
	chatService services.ChatService
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.GetLogger().Debug("ws read error", "user_id", c.UserID, "error", err)
			}
			return
		}

		var frame incomingFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			logger.GetLogger().Debug("ws invalid frame", "user_id", c.UserID, "error", err)
			continue
		}

		c.handleFrame(frame)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame incomingFrame) {
	switch frame.Action {

	case "send_message":
		var payload struct {
			ConversationID string `json:"conversation_id"`
			Content        string `json:"content"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			logger.GetLogger().Debug("ws invalid send_message payload", "user_id", c.UserID, "error", err)
			return
		}

		req := dto.SendMessageRequest{Content: payload.Content}
		message, err := c.chatService.SendMessage(context.Background(), c.UserID, payload.ConversationID, &req)
		if err != nil {
			logger.GetLogger().Debug("ws send_message failed", "user_id", c.UserID, "error", err)
			return
		}
		// Echo the persisted message back to the sender; the recipient
		// is notified through the manager by the chat service itself.
		c.manager.send(c.UserID, Event{Type: EventNewMessage, Payload: *message})

	case "mark_read":
		var payload struct {
			ConversationID string `json:"conversation_id"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			logger.GetLogger().Debug("ws invalid mark_read payload", "user_id", c.UserID, "error", err)
			return
		}
		if _, err := c.chatService.MarkRead(c.UserID, payload.ConversationID); err != nil {
			logger.GetLogger().Debug("ws mark_read failed", "user_id", c.UserID, "error", err)
		}

	default:
		logger.GetLogger().Debug("ws unhandled action", "user_id", c.UserID, "action", frame.Action)
	}
}
