package models

import (
	"strings"
	"time"
)

type JobCategory struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	Icon string `gorm:"default:'💼'" json:"icon"`
}

// JobListing is a job or internship opening owned by a company account.
// Ownership is immutable after creation. Listings are never hard-deleted.
type JobListing struct {
	BaseModel
	CompanyID  string  `gorm:"not null;index" json:"company_id"`
	Company    *User   `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
	CategoryID *string `gorm:"index" json:"category_id,omitempty"`
	Category   *JobCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	Title            string `gorm:"not null" json:"title"`
	Description      string `gorm:"not null" json:"description"`
	Requirements     string `json:"requirements"`
	Responsibilities string `json:"responsibilities"`

	SalaryMin      *float64 `json:"salary_min,omitempty"`
	SalaryMax      *float64 `json:"salary_max,omitempty"`
	SpotsAvailable int      `gorm:"default:1" json:"spots_available"`
	Location       string   `json:"location"`
	RemoteWork     bool     `gorm:"default:false" json:"remote_work"`

	Status   ListingStatus   `gorm:"type:varchar(10);default:'active';index" json:"status"`
	Priority ListingPriority `gorm:"type:varchar(10);default:'normal'" json:"priority"`
	Deadline *time.Time      `json:"deadline,omitempty"`

	// Comma-separated, no structural validation.
	Tags string `json:"tags"`

	Applications []JobApplication `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// TagsList splits the free-text tag field.
func (j *JobListing) TagsList() []string {
	if j.Tags == "" {
		return nil
	}
	parts := strings.Split(j.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// IsDeadlinePassed reports whether the listing deadline exists and is past.
func (j *JobListing) IsDeadlinePassed(now time.Time) bool {
	return j.Deadline != nil && now.After(*j.Deadline)
}
