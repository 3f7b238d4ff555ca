package workers

import (
	"context"
	"time"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/repositories"
)

// StoryWorker deactivates stories older than 24 hours. Highlighted
// stories are kept alive by the repository query.
type StoryWorker struct {
	storyRepo repositories.StoryRepository
	interval  time.Duration
}

func NewStoryWorker(storyRepo repositories.StoryRepository) *StoryWorker {
	return &StoryWorker{
		storyRepo: storyRepo,
		interval:  10 * time.Minute,
	}
}

func (w *StoryWorker) Start(ctx context.Context) {
	go w.expireStories(ctx)
}

func (w *StoryWorker) expireStories(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.GetLogger().Info("story worker stopped")
			return
		case <-ticker.C:
			expired, err := w.storyRepo.DeactivateExpired(time.Now())
			if err != nil {
				logger.GetLogger().Error("failed to expire stories", "error", err)
			} else if expired > 0 {
				logger.GetLogger().Info("expired stories", "count", expired)
			}
		}
	}
}
