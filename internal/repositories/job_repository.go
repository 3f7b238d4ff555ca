package repositories

import (
	"errors"
	"time"

	"instalab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound      = errors.New("job listing not found")
	ErrCategoryNotFound = errors.New("job category not found")
)

// JobFilter holds the public listing search criteria. Zero values mean the
// criterion is not applied.
type JobFilter struct {
	CategorySlug string
	CompanyID    string
	Status       models.ListingStatus
	Location     string
	RemoteWork   *bool
	SalaryMin    *float64
	Search       string
	Page         int
	PageSize     int
}

type JobRepository interface {
	Create(job *models.JobListing) error
	FindByID(id string) (*models.JobListing, error)
	Update(job *models.JobListing) error
	UpdateStatus(jobID string, status models.ListingStatus) error
	FindWithFilter(criteria JobFilter) ([]models.JobListing, int64, error)
	FindByCompany(companyID string, limit, offset int) ([]models.JobListing, error)
	CountByCompany(companyID string) (int64, error)
	CloseExpired(now time.Time) (int64, error)

	// Category operations
	CreateCategory(category *models.JobCategory) error
	FindCategoryBySlug(slug string) (*models.JobCategory, error)
	FindAllCategories() ([]models.JobCategory, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.JobListing) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.JobListing, error) {
	var job models.JobListing
	err := r.db.Preload("Company").Preload("Category").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(job *models.JobListing) error {
	result := r.db.Model(job).Updates(map[string]interface{}{
		"category_id":      job.CategoryID,
		"title":            job.Title,
		"description":      job.Description,
		"requirements":     job.Requirements,
		"responsibilities": job.Responsibilities,
		"salary_min":       job.SalaryMin,
		"salary_max":       job.SalaryMax,
		"spots_available":  job.SpotsAvailable,
		"location":         job.Location,
		"remote_work":      job.RemoteWork,
		"priority":         job.Priority,
		"deadline":         job.Deadline,
		"tags":             job.Tags,
		"updated_at":       time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(jobID string, status models.ListingStatus) error {
	result := r.db.Model(&models.JobListing{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) FindWithFilter(criteria JobFilter) ([]models.JobListing, int64, error) {
	var jobs []models.JobListing
	query := r.db.Model(&models.JobListing{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.CompanyID != "" {
		query = query.Where("company_id = ?", criteria.CompanyID)
	}
	if criteria.CategorySlug != "" {
		query = query.Joins("JOIN job_categories ON job_categories.id = job_listings.category_id").
			Where("job_categories.slug = ?", criteria.CategorySlug)
	}
	if criteria.Location != "" {
		query = query.Where("location ILIKE ?", "%"+criteria.Location+"%")
	}
	if criteria.RemoteWork != nil {
		query = query.Where("remote_work = ?", *criteria.RemoteWork)
	}
	if criteria.SalaryMin != nil {
		query = query.Where("salary_max IS NULL OR salary_max >= ?", *criteria.SalaryMin)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR tags ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("Company").Preload("Category").
		Order("CASE priority WHEN 'featured' THEN 0 WHEN 'urgent' THEN 1 ELSE 2 END, created_at DESC").
		Limit(limit).Offset(offset).Find(&jobs).Error

	return jobs, total, err
}

func (r *JobRepositoryImpl) FindByCompany(companyID string, limit, offset int) ([]models.JobListing, error) {
	var jobs []models.JobListing
	err := r.db.Preload("Category").Where("company_id = ?", companyID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountByCompany(companyID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobListing{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

// CloseExpired moves every active listing with a past deadline to closed and
// returns the number of rows affected.
func (r *JobRepositoryImpl) CloseExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.JobListing{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.ListingStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.ListingStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// Category operations

func (r *JobRepositoryImpl) CreateCategory(category *models.JobCategory) error {
	return r.db.Create(category).Error
}

func (r *JobRepositoryImpl) FindCategoryBySlug(slug string) (*models.JobCategory, error) {
	var category models.JobCategory
	err := r.db.First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *JobRepositoryImpl) FindAllCategories() ([]models.JobCategory, error) {
	var categories []models.JobCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}
