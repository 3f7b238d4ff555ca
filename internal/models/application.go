package models

// JobApplication links one applicant to one listing. The composite unique
// index is the source of truth for the one-application-per-pair rule; service
// pre-checks are an optimization only.
type JobApplication struct {
	BaseModel
	JobID       string      `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"job_id"`
	Job         *JobListing `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	ApplicantID string      `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	Applicant   *User       `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"applicant,omitempty"`

	CoverLetter string            `gorm:"not null" json:"cover_letter"`
	ResumeURL   string            `json:"resume_url,omitempty"`
	Status      ApplicationStatus `gorm:"type:varchar(15);default:'applied';index" json:"status"`

	// Visible to the owning company only.
	CompanyNotes string `json:"company_notes,omitempty"`
}
