package services

import (
	"context"
	"encoding/json"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/models"
	"instalab_backend/internal/queue"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

type NotificationService interface {
	List(userID string, query *dto.NotificationListQuery) (*dto.PaginatedResponse, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)
	UnreadCount(userID string) (int64, error)

	// Notify persists an in-app notification and optionally queues an email.
	Notify(ctx context.Context, n *models.Notification, emailJob *queue.EmailJob)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	publisher        queue.Publisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher queue.Publisher,
) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *NotificationServiceImpl) List(userID string, query *dto.NotificationListQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()

	notifications, total, err := s.notificationRepo.FindByUser(userID, query.UnreadOnly, query.Limit(), query.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.ToNotificationDTO(&notifications[i]))
	}

	resp := dto.NewPaginatedResponse(items, total, query.Page, query.PageSize)
	return &resp, nil
}

func (s *NotificationServiceImpl) MarkRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if notification.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.notificationRepo.MarkRead(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(userID string) (int64, error) {
	count, err := s.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) UnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// Notify never fails the surrounding operation: persistence and queue errors
// are logged only.
func (s *NotificationServiceImpl) Notify(ctx context.Context, n *models.Notification, emailJob *queue.EmailJob) {
	if err := s.notificationRepo.Create(n); err != nil {
		logger.CtxError(ctx, "failed to persist notification", "type", n.Type, "user_id", n.UserID, "error", err)
	}

	if emailJob == nil || s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEmailJob(ctx, *emailJob); err != nil {
		logger.CtxError(ctx, "failed to queue notification email", "subject", emailJob.Subject, "error", err)
	}
}

// NotificationData marshals structured payloads for the Data column.
func NotificationData(v map[string]interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
