package workers

import (
	"context"
	"time"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/repositories"
)

// ListingWorker closes job listings whose application deadline has passed.
type ListingWorker struct {
	jobRepo  repositories.JobRepository
	interval time.Duration
}

func NewListingWorker(jobRepo repositories.JobRepository) *ListingWorker {
	return &ListingWorker{
		jobRepo:  jobRepo,
		interval: 1 * time.Hour,
	}
}

func (w *ListingWorker) Start(ctx context.Context) {
	go w.closeExpiredListings(ctx)
}

func (w *ListingWorker) closeExpiredListings(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.GetLogger().Info("listing worker stopped")
			return
		case <-ticker.C:
			closed, err := w.jobRepo.CloseExpired(time.Now())
			if err != nil {
				logger.GetLogger().Error("failed to close expired listings", "error", err)
			} else if closed > 0 {
				logger.GetLogger().Info("closed expired listings", "count", closed)
			}
		}
	}
}
