package repositories

import (
	"errors"
	"time"

	"instalab_backend/internal/models"

	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ChatRepository interface {
	// Conversation operations
	CreateConversation(conversation *models.Conversation) error
	FindConversationByID(id string) (*models.Conversation, error)
	FindConversationByParticipants(userA, userB string) (*models.Conversation, error)
	FindConversationsByUser(userID string, limit, offset int) ([]models.Conversation, error)

	// Message operations
	CreateMessage(message *models.ChatMessage) error
	FindMessages(conversationID string, limit, offset int) ([]models.ChatMessage, int64, error)
	FindLastMessage(conversationID string) (*models.ChatMessage, error)
	MarkRead(conversationID, readerID string) (int64, error)
	CountUnread(conversationID, readerID string) (int64, error)
	CountUnreadForUser(userID string) (int64, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

// Conversation operations

func (r *ChatRepositoryImpl) CreateConversation(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *ChatRepositoryImpl) FindConversationByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("ParticipantA").Preload("ParticipantB").
		First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindConversationByParticipants(userA, userB string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("ParticipantA").Preload("ParticipantB").
		Where("(participant_a_id = ? AND participant_b_id = ?) OR (participant_a_id = ? AND participant_b_id = ?)",
			userA, userB, userB, userA).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindConversationsByUser(userID string, limit, offset int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Preload("ParticipantA").Preload("ParticipantB").
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Order("updated_at DESC").Limit(limit).Offset(offset).
		Find(&conversations).Error
	return conversations, err
}

// Message operations

func (r *ChatRepositoryImpl) CreateMessage(message *models.ChatMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Bump the conversation so it sorts to the top of the inbox.
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *ChatRepositoryImpl) FindMessages(conversationID string, limit, offset int) ([]models.ChatMessage, int64, error) {
	var messages []models.ChatMessage
	query := r.db.Model(&models.ChatMessage{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Sender").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, total, err
}

func (r *ChatRepositoryImpl) FindLastMessage(conversationID string) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// MarkRead marks every message not sent by readerID as read and returns the
// number of rows affected.
func (r *ChatRepositoryImpl) MarkRead(conversationID, readerID string) (int64, error) {
	result := r.db.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *ChatRepositoryImpl) CountUnread(conversationID, readerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}

func (r *ChatRepositoryImpl) CountUnreadForUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatMessage{}).
		Joins("JOIN conversations ON conversations.id = chat_messages.conversation_id").
		Where("(conversations.participant_a_id = ? OR conversations.participant_b_id = ?)", userID, userID).
		Where("chat_messages.sender_id != ? AND chat_messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
