package services

import (
	"context"

	"instalab_backend/internal/models"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

// MessageSink receives realtime fan-out of new messages. The websocket
// manager implements it; a nil sink disables fan-out.
type MessageSink interface {
	DeliverMessage(recipientID string, message dto.MessageDTO)
}

type ChatService interface {
	StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*dto.ConversationDTO, error)
	ListConversations(userID string, pq *dto.PaginationQuery) ([]dto.ConversationDTO, error)
	SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error)
	Messages(userID, conversationID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)
	MarkRead(userID, conversationID string) (*dto.MarkReadResponse, error)
	UnreadTotal(userID string) (int64, error)
}

type ChatServiceImpl struct {
	chatRepo      repositories.ChatRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	sink          MessageSink
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	sink MessageSink,
) ChatService {
	return &ChatServiceImpl{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		sink:          sink,
	}
}

// StartConversation is get-or-create for the participant pair.
func (s *ChatServiceImpl) StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*dto.ConversationDTO, error) {
	if userID == req.RecipientID {
		return nil, apperrors.ErrCannotMessageSelf
	}

	if _, err := s.userRepo.FindByID(req.RecipientID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	conversation, err := s.chatRepo.FindConversationByParticipants(userID, req.RecipientID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		conversation = &models.Conversation{
			ParticipantAID: userID,
			ParticipantBID: req.RecipientID,
		}
		if err := s.chatRepo.CreateConversation(conversation); err != nil {
			return nil, apperrors.InternalError(err)
		}
		conversation, err = s.chatRepo.FindConversationByID(conversation.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if req.Message != "" {
		if _, err := s.SendMessage(ctx, userID, conversation.ID, &dto.SendMessageRequest{Content: req.Message}); err != nil {
			return nil, err
		}
	}

	return s.toConversationDTO(conversation, userID)
}

func (s *ChatServiceImpl) ListConversations(userID string, pq *dto.PaginationQuery) ([]dto.ConversationDTO, error) {
	pq.Normalize()

	conversations, err := s.chatRepo.FindConversationsByUser(userID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ConversationDTO, 0, len(conversations))
	for i := range conversations {
		d, err := s.toConversationDTO(&conversations[i], userID)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, nil
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error) {
	conversation, err := s.findParticipantConversation(userID, conversationID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	messageDTO := dto.ToMessageDTO(message)
	recipientID := conversation.OtherParticipant(userID)

	if s.sink != nil {
		s.sink.DeliverMessage(recipientID, messageDTO)
	}

	sender, err := s.userRepo.FindByID(userID)
	senderName := "Someone"
	if err == nil {
		senderName = sender.DisplayName()
	}
	s.notifications.Notify(ctx, &models.Notification{
		UserID:  recipientID,
		Type:    models.NotificationTypeNewMessage,
		Title:   "New message",
		Message: senderName + " sent you a message",
		Data:    NotificationData(map[string]interface{}{"conversation_id": conversationID}),
	}, nil)

	return &messageDTO, nil
}

func (s *ChatServiceImpl) Messages(userID, conversationID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	if _, err := s.findParticipantConversation(userID, conversationID); err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.FindMessages(conversationID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MessageDTO, 0, len(messages))
	for i := range messages {
		items = append(items, dto.ToMessageDTO(&messages[i]))
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *ChatServiceImpl) MarkRead(userID, conversationID string) (*dto.MarkReadResponse, error) {
	if _, err := s.findParticipantConversation(userID, conversationID); err != nil {
		return nil, err
	}

	count, err := s.chatRepo.MarkRead(conversationID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.MarkReadResponse{MarkedCount: count}, nil
}

func (s *ChatServiceImpl) UnreadTotal(userID string) (int64, error) {
	count, err := s.chatRepo.CountUnreadForUser(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *ChatServiceImpl) findParticipantConversation(userID, conversationID string) (*models.Conversation, error) {
	conversation, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !conversation.HasParticipant(userID) {
		return nil, apperrors.ErrConversationAccessDenied
	}
	return conversation, nil
}

func (s *ChatServiceImpl) toConversationDTO(conversation *models.Conversation, userID string) (*dto.ConversationDTO, error) {
	d := &dto.ConversationDTO{
		ID:        conversation.ID,
		UpdatedAt: conversation.UpdatedAt,
	}

	peerID := conversation.OtherParticipant(userID)
	if conversation.ParticipantA != nil && conversation.ParticipantA.ID == peerID {
		d.Peer = dto.ToUserDTO(conversation.ParticipantA, false)
	} else if conversation.ParticipantB != nil && conversation.ParticipantB.ID == peerID {
		d.Peer = dto.ToUserDTO(conversation.ParticipantB, false)
	} else if peer, err := s.userRepo.FindByID(peerID); err == nil {
		d.Peer = dto.ToUserDTO(peer, false)
	}

	last, err := s.chatRepo.FindLastMessage(conversation.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if last != nil {
		lastDTO := dto.ToMessageDTO(last)
		d.LastMessage = &lastDTO
	}

	unread, err := s.chatRepo.CountUnread(conversation.ID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	d.UnreadCount = unread

	return d, nil
}
