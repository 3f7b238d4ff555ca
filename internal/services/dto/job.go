package dto

import (
	"time"

	"instalab_backend/internal/models"
)

type CreateJobRequest struct {
	Title            string   `json:"title" binding:"required,min=5,max=200"`
	Description      string   `json:"description" binding:"required,min=20"`
	Requirements     string   `json:"requirements,omitempty"`
	Responsibilities string   `json:"responsibilities,omitempty"`
	CategorySlug     string   `json:"category_slug,omitempty"`
	SalaryMin        *float64 `json:"salary_min,omitempty" binding:"omitempty,min=0"`
	SalaryMax        *float64 `json:"salary_max,omitempty" binding:"omitempty,min=0"`
	SpotsAvailable   int      `json:"spots_available" binding:"omitempty,min=1"`
	Location         string   `json:"location,omitempty"`
	RemoteWork       bool     `json:"remote_work"`
	Priority         string   `json:"priority,omitempty" binding:"omitempty,oneof=normal urgent featured"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Tags             string   `json:"tags,omitempty"`
}

type UpdateJobRequest struct {
	Title            *string    `json:"title,omitempty" binding:"omitempty,min=5,max=200"`
	Description      *string    `json:"description,omitempty" binding:"omitempty,min=20"`
	Requirements     *string    `json:"requirements,omitempty"`
	Responsibilities *string    `json:"responsibilities,omitempty"`
	CategorySlug     *string    `json:"category_slug,omitempty"`
	SalaryMin        *float64   `json:"salary_min,omitempty" binding:"omitempty,min=0"`
	SalaryMax        *float64   `json:"salary_max,omitempty" binding:"omitempty,min=0"`
	SpotsAvailable   *int       `json:"spots_available,omitempty" binding:"omitempty,min=1"`
	Location         *string    `json:"location,omitempty"`
	RemoteWork       *bool      `json:"remote_work,omitempty"`
	Priority         *string    `json:"priority,omitempty" binding:"omitempty,oneof=normal urgent featured"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Tags             *string    `json:"tags,omitempty"`
}

type UpdateJobStatusRequest struct {
	Status models.ListingStatus `json:"status" binding:"required,is-listing-status"`
}

type JobSearchQuery struct {
	PaginationQuery
	Category   string   `form:"category"`
	Location   string   `form:"location"`
	RemoteWork *bool    `form:"remote"`
	SalaryMin  *float64 `form:"salary_min"`
	Search     string   `form:"q"`
}

type JobDTO struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Requirements     string                 `json:"requirements,omitempty"`
	Responsibilities string                 `json:"responsibilities,omitempty"`
	Company          UserDTO                `json:"company"`
	Category         *JobCategoryDTO        `json:"category,omitempty"`
	SalaryMin        *float64               `json:"salary_min,omitempty"`
	SalaryMax        *float64               `json:"salary_max,omitempty"`
	SpotsAvailable   int                    `json:"spots_available"`
	Location         string                 `json:"location,omitempty"`
	RemoteWork       bool                   `json:"remote_work"`
	Status           models.ListingStatus   `json:"status"`
	Priority         models.ListingPriority `json:"priority"`
	Deadline         *time.Time             `json:"deadline,omitempty"`
	DeadlinePassed   bool                   `json:"deadline_passed"`
	Tags             []string               `json:"tags"`
	ApplicationCount int64                  `json:"application_count"`
	CreatedAt        time.Time              `json:"created_at"`
}

type JobCategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

func ToJobCategoryDTO(c *models.JobCategory) JobCategoryDTO {
	return JobCategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon}
}

func ToJobDTO(job *models.JobListing, applicationCount int64, now time.Time) JobDTO {
	d := JobDTO{
		ID:               job.ID,
		Title:            job.Title,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		SpotsAvailable:   job.SpotsAvailable,
		Location:         job.Location,
		RemoteWork:       job.RemoteWork,
		Status:           job.Status,
		Priority:         job.Priority,
		Deadline:         job.Deadline,
		DeadlinePassed:   job.IsDeadlinePassed(now),
		Tags:             job.TagsList(),
		ApplicationCount: applicationCount,
		CreatedAt:        job.CreatedAt,
	}
	if job.Company != nil {
		d.Company = ToUserDTO(job.Company, false)
	}
	if job.Category != nil {
		cat := ToJobCategoryDTO(job.Category)
		d.Category = &cat
	}
	return d
}
