package services

import (
	"time"

	"instalab_backend/internal/models"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

// Listing status moves: active pauses or closes, paused resumes or closes.
// Closed is terminal.
var listingTransitions = map[models.ListingStatus][]models.ListingStatus{
	models.ListingStatusActive: {models.ListingStatusPaused, models.ListingStatusClosed},
	models.ListingStatusPaused: {models.ListingStatusActive, models.ListingStatusClosed},
}

type JobService interface {
	Create(companyID string, req *dto.CreateJobRequest) (*dto.JobDTO, error)
	Get(viewerID string, jobID string) (*dto.JobDTO, error)
	Update(companyID, jobID string, req *dto.UpdateJobRequest) (*dto.JobDTO, error)
	UpdateStatus(companyID, jobID string, status models.ListingStatus) (*dto.JobDTO, error)
	Search(query *dto.JobSearchQuery) (*dto.PaginatedResponse, error)
	ListByCompany(viewerID, companyID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)
	Categories() ([]dto.JobCategoryDTO, error)
}

type JobServiceImpl struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
	}
}

func (s *JobServiceImpl) Create(companyID string, req *dto.CreateJobRequest) (*dto.JobDTO, error) {
	company, err := s.userRepo.FindByID(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !company.IsCompany() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, apperrors.NewBadRequestError("salary_min cannot exceed salary_max")
	}
	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("deadline must be in the future")
	}

	job := &models.JobListing{
		CompanyID:        companyID,
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SpotsAvailable:   req.SpotsAvailable,
		Location:         req.Location,
		RemoteWork:       req.RemoteWork,
		Status:           models.ListingStatusActive,
		Priority:         models.ListingPriorityNormal,
		Deadline:         req.Deadline,
		Tags:             req.Tags,
	}
	if job.SpotsAvailable <= 0 {
		job.SpotsAvailable = 1
	}
	if req.Priority != "" {
		job.Priority = models.ListingPriority(req.Priority)
	}

	var category *models.JobCategory
	if req.CategorySlug != "" {
		found, err := s.jobRepo.FindCategoryBySlug(req.CategorySlug)
		if err != nil {
			if apperrors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		category = found
		job.CategoryID = &category.ID
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	job.Category = category

	return s.toDTO(job)
}

// Get enforces listing visibility: non-active listings are only visible to
// their owner.
func (s *JobServiceImpl) Get(viewerID string, jobID string) (*dto.JobDTO, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.ListingStatusActive && job.CompanyID != viewerID {
		return nil, apperrors.ErrNotFound(repositories.ErrJobNotFound)
	}

	return s.toDTO(job)
}

func (s *JobServiceImpl) Update(companyID, jobID string, req *dto.UpdateJobRequest) (*dto.JobDTO, error) {
	job, err := s.findOwnedJob(companyID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		job.Responsibilities = *req.Responsibilities
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperrors.NewBadRequestError("salary_min cannot exceed salary_max")
	}
	if req.SpotsAvailable != nil {
		job.SpotsAvailable = *req.SpotsAvailable
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.RemoteWork != nil {
		job.RemoteWork = *req.RemoteWork
	}
	if req.Priority != nil {
		job.Priority = models.ListingPriority(*req.Priority)
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
	}

	if req.CategorySlug != nil {
		if *req.CategorySlug == "" {
			job.CategoryID = nil
			job.Category = nil
		} else {
			category, err := s.jobRepo.FindCategoryBySlug(*req.CategorySlug)
			if err != nil {
				if apperrors.Is(err, repositories.ErrCategoryNotFound) {
					return nil, apperrors.ErrNotFound(err)
				}
				return nil, apperrors.InternalError(err)
			}
			job.CategoryID = &category.ID
			job.Category = category
		}
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toDTO(job)
}

func (s *JobServiceImpl) UpdateStatus(companyID, jobID string, status models.ListingStatus) (*dto.JobDTO, error) {
	job, err := s.findOwnedJob(companyID, jobID)
	if err != nil {
		return nil, err
	}

	if !canTransitionListing(job.Status, status) {
		return nil, apperrors.ErrInvalidListingStatus
	}

	if err := s.jobRepo.UpdateStatus(jobID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	job.Status = status

	return s.toDTO(job)
}

func (s *JobServiceImpl) Search(query *dto.JobSearchQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()

	jobs, total, err := s.jobRepo.FindWithFilter(repositories.JobFilter{
		CategorySlug: query.Category,
		Status:       models.ListingStatusActive,
		Location:     query.Location,
		RemoteWork:   query.RemoteWork,
		SalaryMin:    query.SalaryMin,
		Search:       query.Search,
		Page:         query.Page,
		PageSize:     query.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, err := s.toDTOList(jobs)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPaginatedResponse(items, total, query.Page, query.PageSize)
	return &resp, nil
}

// ListByCompany returns all statuses for the owner and active listings for
// everyone else.
func (s *JobServiceImpl) ListByCompany(viewerID, companyID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	filter := repositories.JobFilter{
		CompanyID: companyID,
		Page:      pq.Page,
		PageSize:  pq.PageSize,
	}
	if viewerID != companyID {
		filter.Status = models.ListingStatusActive
	}

	jobs, total, err := s.jobRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, err := s.toDTOList(jobs)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *JobServiceImpl) Categories() ([]dto.JobCategoryDTO, error) {
	categories, err := s.jobRepo.FindAllCategories()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.JobCategoryDTO, 0, len(categories))
	for i := range categories {
		items = append(items, dto.ToJobCategoryDTO(&categories[i]))
	}
	return items, nil
}

func (s *JobServiceImpl) findOwnedJob(companyID, jobID string) (*models.JobListing, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.CompanyID != companyID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return job, nil
}

func (s *JobServiceImpl) toDTO(job *models.JobListing) (*dto.JobDTO, error) {
	count, err := s.applicationRepo.CountByJob(job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	d := dto.ToJobDTO(job, count, time.Now())
	return &d, nil
}

func (s *JobServiceImpl) toDTOList(jobs []models.JobListing) ([]dto.JobDTO, error) {
	now := time.Now()
	items := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		count, err := s.applicationRepo.CountByJob(jobs[i].ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		items = append(items, dto.ToJobDTO(&jobs[i], count, now))
	}
	return items, nil
}

func canTransitionListing(from, to models.ListingStatus) bool {
	for _, allowed := range listingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
