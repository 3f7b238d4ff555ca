package repositories

import (
	"errors"
	"time"

	"instalab_backend/internal/models"

	"gorm.io/gorm"
)

var ErrStoryNotFound = errors.New("story not found")

type StoryRepository interface {
	Create(story *models.Story) error
	FindByID(id string) (*models.Story, error)
	Deactivate(storyID string) error
	FindActive(now time.Time) ([]models.Story, error)
	FindActiveByUser(userID string, now time.Time) ([]models.Story, error)
	FindHighlightedByUser(userID string) ([]models.Story, error)
	DeactivateExpired(now time.Time) (int64, error)

	// View operations
	RecordView(view *models.StoryView) error
	CountViews(storyID string) (int64, error)
	FindViewedStoryIDs(viewerID string, storyIDs []string) ([]string, error)
}

type StoryRepositoryImpl struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &StoryRepositoryImpl{db: db}
}

func (r *StoryRepositoryImpl) Create(story *models.Story) error {
	return r.db.Create(story).Error
}

func (r *StoryRepositoryImpl) FindByID(id string) (*models.Story, error) {
	var story models.Story
	err := r.db.Preload("User").First(&story, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return &story, nil
}

func (r *StoryRepositoryImpl) Deactivate(storyID string) error {
	result := r.db.Model(&models.Story{}).Where("id = ?", storyID).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (r *StoryRepositoryImpl) FindActive(now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Preload("User").
		Where("is_active = ? AND expires_at > ?", true, now).
		Order("user_id, created_at ASC").
		Find(&stories).Error
	return stories, err
}

func (r *StoryRepositoryImpl) FindActiveByUser(userID string, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Preload("User").
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("created_at ASC").
		Find(&stories).Error
	return stories, err
}

func (r *StoryRepositoryImpl) FindHighlightedByUser(userID string) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Where("user_id = ? AND is_highlighted = ?", userID, true).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

// DeactivateExpired flips expired stories that are still marked active.
// Highlighted stories survive expiry.
func (r *StoryRepositoryImpl) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Story{}).
		Where("is_active = ? AND is_highlighted = ? AND expires_at <= ?", true, false, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// View operations

func (r *StoryRepositoryImpl) RecordView(view *models.StoryView) error {
	err := r.db.Create(view).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Repeat views are idempotent.
		return nil
	}
	return err
}

func (r *StoryRepositoryImpl) CountViews(storyID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.StoryView{}).Where("story_id = ?", storyID).Count(&count).Error
	return count, err
}

func (r *StoryRepositoryImpl) FindViewedStoryIDs(viewerID string, storyIDs []string) ([]string, error) {
	if len(storyIDs) == 0 {
		return nil, nil
	}
	var viewed []string
	err := r.db.Model(&models.StoryView{}).
		Where("viewer_id = ? AND story_id IN ?", viewerID, storyIDs).
		Pluck("story_id", &viewed).Error
	return viewed, err
}
