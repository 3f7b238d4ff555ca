package dto

import (
	"time"

	"instalab_backend/internal/models"
)

type StartConversationRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	// Optional first message sent in the same call.
	Message string `json:"message,omitempty" binding:"omitempty,min=1,max=4000"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=4000"`
}

type ConversationDTO struct {
	ID          string      `json:"id"`
	Peer        UserDTO     `json:"peer"`
	LastMessage *MessageDTO `json:"last_message,omitempty"`
	UnreadCount int64       `json:"unread_count"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type MessageDTO struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToMessageDTO(m *models.ChatMessage) MessageDTO {
	return MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

type MarkReadResponse struct {
	MarkedCount int64 `json:"marked_count"`
}
