package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"instalab_backend/internal/models"
	"instalab_backend/internal/queue"
	"instalab_backend/internal/repositories"
)

// In-memory repository fakes backing the service unit tests.

type fakeUserRepo struct {
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByNickname(nickname string) (*models.User, error) {
	for _, user := range r.users {
		if user.Nickname == nickname {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Nickname == user.Nickname {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID, passwordHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) FindByRole(role models.UserRole, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Search(query string, limit, offset int) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range r.users {
		if strings.Contains(user.Nickname, query) {
			out = append(out, *user)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return stored, nil
}

func (r *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeUserRepo) DeleteUserRefreshTokens(userID string) error {
	for key, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

func (r *fakeUserRepo) CleanExpiredRefreshTokens() error {
	now := time.Now()
	for key, token := range r.tokens {
		if token.ExpiresAt.Before(now) {
			delete(r.tokens, key)
		}
	}
	return nil
}

type fakeJobRepo struct {
	jobs       map[string]*models.JobListing
	categories map[string]*models.JobCategory
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:       make(map[string]*models.JobListing),
		categories: make(map[string]*models.JobCategory),
	}
}

func (r *fakeJobRepo) add(job *models.JobListing) *models.JobListing {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ListingStatusActive
	}
	if job.SpotsAvailable == 0 {
		job.SpotsAvailable = 1
	}
	r.jobs[job.ID] = job
	return job
}

func (r *fakeJobRepo) Create(job *models.JobListing) error {
	r.add(job)
	return nil
}

func (r *fakeJobRepo) FindByID(id string) (*models.JobListing, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) Update(job *models.JobListing) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) UpdateStatus(jobID string, status models.ListingStatus) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.Status = status
	return nil
}

func (r *fakeJobRepo) FindWithFilter(criteria repositories.JobFilter) ([]models.JobListing, int64, error) {
	var out []models.JobListing
	for _, job := range r.jobs {
		if criteria.Status != "" && job.Status != criteria.Status {
			continue
		}
		if criteria.CompanyID != "" && job.CompanyID != criteria.CompanyID {
			continue
		}
		out = append(out, *job)
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) FindByCompany(companyID string, limit, offset int) ([]models.JobListing, error) {
	var out []models.JobListing
	for _, job := range r.jobs {
		if job.CompanyID == companyID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) CountByCompany(companyID string) (int64, error) {
	jobs, _ := r.FindByCompany(companyID, 0, 0)
	return int64(len(jobs)), nil
}

func (r *fakeJobRepo) CloseExpired(now time.Time) (int64, error) {
	var closed int64
	for _, job := range r.jobs {
		if job.Status == models.ListingStatusActive && job.Deadline != nil && job.Deadline.Before(now) {
			job.Status = models.ListingStatusClosed
			closed++
		}
	}
	return closed, nil
}

func (r *fakeJobRepo) CreateCategory(category *models.JobCategory) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	r.categories[category.Slug] = category
	return nil
}

func (r *fakeJobRepo) FindCategoryBySlug(slug string) (*models.JobCategory, error) {
	category, ok := r.categories[slug]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeJobRepo) FindAllCategories() ([]models.JobCategory, error) {
	var out []models.JobCategory
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, nil
}

type fakeApplicationRepo struct {
	applications map[string]*models.JobApplication
	jobs         *fakeJobRepo
	users        *fakeUserRepo

	// findPairErr, when set, is returned by FindByJobAndApplicant to
	// simulate a failing lookup.
	findPairErr error
}

func newFakeApplicationRepo(jobs *fakeJobRepo, users *fakeUserRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[string]*models.JobApplication),
		jobs:         jobs,
		users:        users,
	}
}

func (r *fakeApplicationRepo) Create(application *models.JobApplication) error {
	for _, existing := range r.applications {
		if existing.JobID == application.JobID && existing.ApplicantID == application.ApplicantID {
			return repositories.ErrDuplicateApplication
		}
	}
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	stored := *application
	stored.Job = nil
	stored.Applicant = nil
	r.applications[application.ID] = &stored
	return nil
}

// FindByID mirrors the production preloads by attaching Job and Applicant.
func (r *fakeApplicationRepo) FindByID(id string) (*models.JobApplication, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *application
	if job, err := r.jobs.FindByID(copied.JobID); err == nil {
		copied.Job = job
	}
	if applicant, err := r.users.FindByID(copied.ApplicantID); err == nil {
		copied.Applicant = applicant
	}
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJobAndApplicant(jobID, applicantID string) (*models.JobApplication, error) {
	if r.findPairErr != nil {
		return nil, r.findPairErr
	}
	for _, application := range r.applications {
		if application.JobID == jobID && application.ApplicantID == applicantID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) UpdateStatus(applicationID string, status models.ApplicationStatus, notes string) error {
	application, ok := r.applications[applicationID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	application.Status = status
	if notes != "" {
		application.CompanyNotes = notes
	}
	return nil
}

func (r *fakeApplicationRepo) FindByJob(jobID string, status models.ApplicationStatus, limit, offset int) ([]models.JobApplication, int64, error) {
	var out []models.JobApplication
	for _, application := range r.applications {
		if application.JobID != jobID {
			continue
		}
		if status != "" && application.Status != status {
			continue
		}
		found, _ := r.FindByID(application.ID)
		out = append(out, *found)
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) FindByApplicant(applicantID string, limit, offset int) ([]models.JobApplication, int64, error) {
	var out []models.JobApplication
	for _, application := range r.applications {
		if application.ApplicantID == applicantID {
			found, _ := r.FindByID(application.ID)
			out = append(out, *found)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) CountAccepted(jobID string) (int64, error) {
	var count int64
	for _, application := range r.applications {
		if application.JobID == jobID && application.Status == models.ApplicationStatusAccepted {
			count++
		}
	}
	return count, nil
}

func (r *fakeApplicationRepo) CountByJob(jobID string) (int64, error) {
	var count int64
	for _, application := range r.applications {
		if application.JobID == jobID {
			count++
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			return notification, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, notification := range r.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		out = append(out, *notification)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkRead(notificationID string) error {
	for _, notification := range r.notifications {
		if notification.ID == notificationID {
			notification.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(userID string) (int64, error) {
	var marked int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			marked++
		}
	}
	return marked, nil
}

func (r *fakeNotificationRepo) CountUnread(userID string) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteOld(before time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) forUser(userID string) []*models.Notification {
	var out []*models.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	return out
}

// newTestNotificationService drops email jobs on the floor.
func newTestNotificationService(repo repositories.NotificationRepository) NotificationService {
	return NewNotificationService(repo, queue.NewInlineQueue(func(queue.EmailJob) error { return nil }))
}

func newTestStudent(users *fakeUserRepo, nickname string) *models.User {
	return users.add(&models.User{
		Email:      fmt.Sprintf("%s@test.com", nickname),
		Nickname:   nickname,
		Role:       models.UserRoleStudent,
		Course:     "Computer Science",
		University: "Test University",
	})
}

func newTestCompany(users *fakeUserRepo, nickname string) *models.User {
	return users.add(&models.User{
		Email:       fmt.Sprintf("%s@test.com", nickname),
		Nickname:    nickname,
		Role:        models.UserRoleCompany,
		CompanyName: nickname + " Inc.",
	})
}
