package dto

import (
	"time"

	"gorm.io/datatypes"

	"instalab_backend/internal/models"
)

type CreateStoryRequest struct {
	Title         string         `json:"title" binding:"required,min=1,max=200"`
	Content       string         `json:"content,omitempty" binding:"omitempty,max=2000"`
	StoryType     string         `json:"story_type,omitempty" binding:"omitempty,is-story-type"`
	ImageURL      string         `json:"image_url,omitempty" binding:"omitempty,url"`
	ExternalLink  string         `json:"external_link,omitempty" binding:"omitempty,url"`
	RelatedJobID  *string        `json:"related_job_id,omitempty"`
	Data          datatypes.JSON `json:"data,omitempty"`
	IsHighlighted bool           `json:"is_highlighted"`
}

type StoryDTO struct {
	ID            string           `json:"id"`
	User          UserDTO          `json:"user"`
	Title         string           `json:"title"`
	Content       string           `json:"content,omitempty"`
	StoryType     models.StoryType `json:"story_type"`
	ImageURL      string           `json:"image_url,omitempty"`
	ExternalLink  string           `json:"external_link,omitempty"`
	RelatedJobID  *string          `json:"related_job_id,omitempty"`
	Data          datatypes.JSON   `json:"data,omitempty"`
	IsHighlighted bool             `json:"is_highlighted"`
	ViewCount     int64            `json:"view_count"`
	ViewedByMe    bool             `json:"viewed_by_me"`
	ExpiresAt     time.Time        `json:"expires_at"`
	CreatedAt     time.Time        `json:"created_at"`
}

func ToStoryDTO(story *models.Story, viewCount int64, viewedByMe bool) StoryDTO {
	d := StoryDTO{
		ID:            story.ID,
		Title:         story.Title,
		Content:       story.Content,
		StoryType:     story.StoryType,
		ImageURL:      story.ImageURL,
		ExternalLink:  story.ExternalLink,
		RelatedJobID:  story.RelatedJobID,
		Data:          story.Data,
		IsHighlighted: story.IsHighlighted,
		ViewCount:     viewCount,
		ViewedByMe:    viewedByMe,
		ExpiresAt:     story.ExpiresAt,
		CreatedAt:     story.CreatedAt,
	}
	if story.User != nil {
		d.User = ToUserDTO(story.User, false)
	}
	return d
}

// StoryGroupDTO is one user's active story reel in the stories bar.
type StoryGroupDTO struct {
	User          UserDTO    `json:"user"`
	Stories       []StoryDTO `json:"stories"`
	UnviewedCount int        `json:"unviewed_count"`
}
