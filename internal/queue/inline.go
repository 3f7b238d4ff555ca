package queue

import (
	"context"

	"instalab_backend/internal/logger"
)

// InlineQueue runs jobs synchronously when no broker is configured. Used in
// development and tests.
type InlineQueue struct {
	handler func(EmailJob) error
}

func NewInlineQueue(handler func(EmailJob) error) *InlineQueue {
	return &InlineQueue{handler: handler}
}

func (q *InlineQueue) PublishEmailJob(_ context.Context, job EmailJob) error {
	if q.handler == nil {
		return nil
	}
	if err := q.handler(job); err != nil {
		// Delivery failures never surface to the request path.
		logger.GetLogger().Warn("inline email job failed", "subject", job.Subject, "error", err)
	}
	return nil
}

func (q *InlineQueue) Close() error {
	return nil
}
