package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/middleware"
	"instalab_backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to configured origins once the frontend domain is fixed.
		return true
	},
}

type WebSocketHandler struct {
	Manager     *WebSocketManager
	chatService services.ChatService
}

func NewWebSocketHandler(manager *WebSocketManager, chatService services.ChatService) *WebSocketHandler {
	return &WebSocketHandler{
		Manager:     manager,
		chatService: chatService,
	}
}

func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:      userID,
		Conn:        conn,
		Send:        make(chan Event, 256),
		manager:     h.Manager,
		chatService: h.chatService,
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
