package dto

import (
	"time"

	"instalab_backend/internal/models"
)

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"required,min=100"`
	ResumeURL   string `json:"resume_url,omitempty" binding:"omitempty,url"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,is-application-status"`
	Notes  string                   `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

type ApplicationListQuery struct {
	PaginationQuery
	Status models.ApplicationStatus `form:"status" binding:"omitempty,is-application-status"`
}

type ApplicationDTO struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	Job         *JobDTO                  `json:"job,omitempty"`
	Applicant   *UserDTO                 `json:"applicant,omitempty"`
	CoverLetter string                   `json:"cover_letter"`
	ResumeURL   string                   `json:"resume_url,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	// Set only for the owning company.
	CompanyNotes string    `json:"company_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToApplicationDTO maps an application. forCompany controls whether the
// company-only notes are exposed.
func ToApplicationDTO(a *models.JobApplication, forCompany bool) ApplicationDTO {
	d := ApplicationDTO{
		ID:          a.ID,
		JobID:       a.JobID,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if forCompany {
		d.CompanyNotes = a.CompanyNotes
	}
	if a.Job != nil {
		job := ToJobDTO(a.Job, 0, time.Now())
		d.Job = &job
	}
	if a.Applicant != nil {
		applicant := ToUserDTO(a.Applicant, false)
		d.Applicant = &applicant
	}
	return d
}
