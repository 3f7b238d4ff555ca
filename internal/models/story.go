package models

import (
	"time"

	"gorm.io/datatypes"
)

// Story is a 24-hour post. Expired stories stay in storage but are filtered
// from feeds and eventually deactivated by the story worker.
type Story struct {
	BaseModel
	UserID       string    `gorm:"not null;index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title        string    `gorm:"not null" json:"title"`
	Content      string    `json:"content"`
	StoryType    StoryType `gorm:"type:varchar(15);default:'general'" json:"story_type"`
	ImageURL     string    `json:"image_url,omitempty"`
	ExternalLink string    `json:"external_link,omitempty"`
	RelatedJobID *string   `gorm:"index" json:"related_job_id,omitempty"`

	// Extra presentation payload (highlight colors, sticker positions).
	Data datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`

	IsHighlighted bool      `gorm:"default:false" json:"is_highlighted"`
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
}

// StoryView is unique per (story, viewer) so repeat views are idempotent.
type StoryView struct {
	BaseModel
	StoryID  string `gorm:"not null;index;uniqueIndex:idx_story_viewer" json:"story_id"`
	ViewerID string `gorm:"not null;uniqueIndex:idx_story_viewer" json:"viewer_id"`
}
