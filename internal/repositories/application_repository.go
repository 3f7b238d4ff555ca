package repositories

import (
	"errors"
	"time"

	"instalab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and applicant")
)

type ApplicationRepository interface {
	Create(application *models.JobApplication) error
	FindByID(id string) (*models.JobApplication, error)
	FindByJobAndApplicant(jobID, applicantID string) (*models.JobApplication, error)
	UpdateStatus(applicationID string, status models.ApplicationStatus, notes string) error
	FindByJob(jobID string, status models.ApplicationStatus, limit, offset int) ([]models.JobApplication, int64, error)
	FindByApplicant(applicantID string, limit, offset int) ([]models.JobApplication, int64, error)
	CountAccepted(jobID string) (int64, error)
	CountByJob(jobID string) (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(application *models.JobApplication) error {
	err := r.db.Create(application).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.db.Preload("Job").Preload("Job.Company").Preload("Applicant").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndApplicant(jobID, applicantID string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.db.Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// UpdateStatus writes status and, when non-empty, the company notes in a
// single statement so a partial write cannot occur.
func (r *ApplicationRepositoryImpl) UpdateStatus(applicationID string, status models.ApplicationStatus, notes string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		updates["company_notes"] = notes
	}

	result := r.db.Model(&models.JobApplication{}).Where("id = ?", applicationID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string, status models.ApplicationStatus, limit, offset int) ([]models.JobApplication, int64, error) {
	var applications []models.JobApplication
	query := r.db.Model(&models.JobApplication{}).Where("job_id = ?", jobID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Applicant").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&applications).Error
	return applications, total, err
}

func (r *ApplicationRepositoryImpl) FindByApplicant(applicantID string, limit, offset int) ([]models.JobApplication, int64, error) {
	var applications []models.JobApplication
	query := r.db.Model(&models.JobApplication{}).Where("applicant_id = ?", applicantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Job").Preload("Job.Company").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&applications).Error
	return applications, total, err
}

func (r *ApplicationRepositoryImpl) CountAccepted(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("job_id = ? AND status = ?", jobID, models.ApplicationStatusAccepted).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByJob(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
