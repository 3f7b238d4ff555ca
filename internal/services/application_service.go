package services

import (
	"context"
	"time"

	"instalab_backend/internal/email"
	"instalab_backend/internal/models"
	"instalab_backend/internal/queue"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(ctx context.Context, applicantID, jobID string, req *dto.ApplyRequest) (*dto.ApplicationDTO, error)
	UpdateStatus(ctx context.Context, companyID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationDTO, error)
	Withdraw(ctx context.Context, applicantID, applicationID string) (*dto.ApplicationDTO, error)
	Get(viewerID, applicationID string) (*dto.ApplicationDTO, error)
	ListForJob(companyID, jobID string, query *dto.ApplicationListQuery) (*dto.PaginatedResponse, error)
	ListOwn(applicantID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository
	notifications   NotificationService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

// Apply checks, in order: role, listing status, deadline, duplicate, spots.
// The first failing check wins so error responses are deterministic.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, applicantID, jobID string, req *dto.ApplyRequest) (*dto.ApplicationDTO, error) {
	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !applicant.IsStudent() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.ListingStatusActive {
		return nil, apperrors.ErrListingNotActive
	}
	if job.IsDeadlinePassed(time.Now()) {
		return nil, apperrors.ErrDeadlinePassed
	}

	if _, err := s.applicationRepo.FindByJobAndApplicant(jobID, applicantID); err == nil {
		return nil, apperrors.ErrApplicationAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	accepted, err := s.applicationRepo.CountAccepted(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if accepted >= int64(job.SpotsAvailable) {
		return nil, apperrors.ErrNoSpotsRemaining
	}

	application := &models.JobApplication{
		JobID:       jobID,
		ApplicantID: applicantID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      models.ApplicationStatusApplied,
	}

	if err := s.applicationRepo.Create(application); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrApplicationAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	application.Job = job
	application.Applicant = applicant

	s.notifyNewApplication(ctx, job, applicant, application)

	d := dto.ToApplicationDTO(application, false)
	return &d, nil
}

// UpdateStatus moves an application along the forward-only lifecycle. Only
// the listing owner may call it, and withdrawn is never a valid target here.
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, companyID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationDTO, error) {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if application.Job == nil || application.Job.CompanyID != companyID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Status == models.ApplicationStatusWithdrawn {
		return nil, apperrors.ErrInvalidStatusTransition
	}
	if !models.CanTransitionApplication(application.Status, req.Status) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	// Accepting must not oversubscribe the listing.
	if req.Status == models.ApplicationStatusAccepted {
		accepted, err := s.applicationRepo.CountAccepted(application.JobID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if accepted >= int64(application.Job.SpotsAvailable) {
			return nil, apperrors.ErrNoSpotsRemaining
		}
	}

	if err := s.applicationRepo.UpdateStatus(applicationID, req.Status, req.Notes); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = req.Status
	if req.Notes != "" {
		application.CompanyNotes = req.Notes
	}

	s.notifyStatusChange(ctx, application)

	d := dto.ToApplicationDTO(application, true)
	return &d, nil
}

// Withdraw is the applicant-only exit from any non-terminal status.
func (s *ApplicationServiceImpl) Withdraw(ctx context.Context, applicantID, applicationID string) (*dto.ApplicationDTO, error) {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantID != applicantID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if models.IsTerminalApplicationStatus(application.Status) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	if err := s.applicationRepo.UpdateStatus(applicationID, models.ApplicationStatusWithdrawn, ""); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = models.ApplicationStatusWithdrawn

	if application.Job != nil {
		s.notifications.Notify(ctx, &models.Notification{
			UserID:  application.Job.CompanyID,
			Type:    models.NotificationTypeApplicationStatus,
			Title:   "Application withdrawn",
			Message: "An applicant withdrew their application for " + application.Job.Title,
			Data: NotificationData(map[string]interface{}{
				"job_id":         application.JobID,
				"application_id": application.ID,
			}),
		}, nil)
	}

	d := dto.ToApplicationDTO(application, false)
	return &d, nil
}

// Get is visible to the applicant and the listing owner only.
func (s *ApplicationServiceImpl) Get(viewerID, applicationID string) (*dto.ApplicationDTO, error) {
	application, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}

	isOwner := application.Job != nil && application.Job.CompanyID == viewerID
	if application.ApplicantID != viewerID && !isOwner {
		return nil, apperrors.ErrInsufficientPermissions
	}

	d := dto.ToApplicationDTO(application, isOwner)
	return &d, nil
}

func (s *ApplicationServiceImpl) ListForJob(companyID, jobID string, query *dto.ApplicationListQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()

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

	applications, total, err := s.applicationRepo.FindByJob(jobID, query.Status, query.Limit(), query.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ApplicationDTO, 0, len(applications))
	for i := range applications {
		items = append(items, dto.ToApplicationDTO(&applications[i], true))
	}

	resp := dto.NewPaginatedResponse(items, total, query.Page, query.PageSize)
	return &resp, nil
}

func (s *ApplicationServiceImpl) ListOwn(applicantID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	applications, total, err := s.applicationRepo.FindByApplicant(applicantID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ApplicationDTO, 0, len(applications))
	for i := range applications {
		items = append(items, dto.ToApplicationDTO(&applications[i], false))
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *ApplicationServiceImpl) findApplication(applicationID string) (*models.JobApplication, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func (s *ApplicationServiceImpl) notifyNewApplication(ctx context.Context, job *models.JobListing, applicant *models.User, application *models.JobApplication) {
	notification := &models.Notification{
		UserID:  job.CompanyID,
		Type:    models.NotificationTypeNewApplication,
		Title:   "New application",
		Message: applicant.Nickname + " applied for " + job.Title,
		Data: NotificationData(map[string]interface{}{
			"job_id":         job.ID,
			"application_id": application.ID,
		}),
	}

	var emailJob *queue.EmailJob
	if job.Company != nil && job.Company.Email != "" {
		emailJob = &queue.EmailJob{
			To:           []string{job.Company.Email},
			Subject:      "New application for " + job.Title,
			TemplateName: email.TemplateApplicationReceived,
			Data: map[string]interface{}{
				"JobTitle":      job.Title,
				"ApplicantName": applicant.DisplayName(),
			},
		}
	}

	s.notifications.Notify(ctx, notification, emailJob)
}

func (s *ApplicationServiceImpl) notifyStatusChange(ctx context.Context, application *models.JobApplication) {
	job := application.Job
	if job == nil {
		return
	}

	companyName := job.Title
	if job.Company != nil {
		companyName = job.Company.DisplayName()
	}

	var templateName, title string
	switch application.Status {
	case models.ApplicationStatusAccepted:
		templateName = email.TemplateApplicationAccepted
		title = "Application accepted"
	case models.ApplicationStatusRejected:
		templateName = email.TemplateApplicationRejected
		title = "Application update"
	default:
		templateName = email.TemplateApplicationStatus
		title = "Application status changed"
	}

	notification := &models.Notification{
		UserID:  application.ApplicantID,
		Type:    models.NotificationTypeApplicationStatus,
		Title:   title,
		Message: "Your application for " + job.Title + " is now " + string(application.Status),
		Data: NotificationData(map[string]interface{}{
			"job_id":         job.ID,
			"application_id": application.ID,
			"status":         string(application.Status),
		}),
	}

	var emailJob *queue.EmailJob
	if application.Applicant != nil && application.Applicant.Email != "" {
		emailJob = &queue.EmailJob{
			To:           []string{application.Applicant.Email},
			Subject:      title + ": " + job.Title,
			TemplateName: templateName,
			Data: map[string]interface{}{
				"Name":        application.Applicant.DisplayName(),
				"JobTitle":    job.Title,
				"CompanyName": companyName,
				"Status":      string(application.Status),
			},
		}
	}

	s.notifications.Notify(ctx, notification, emailJob)
}
