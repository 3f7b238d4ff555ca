package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalab_backend/internal/models"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

type jobFixture struct {
	users   *fakeUserRepo
	jobs    *fakeJobRepo
	service JobService
}

func newJobFixture() *jobFixture {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	applications := newFakeApplicationRepo(jobs, users)

	return &jobFixture{
		users:   users,
		jobs:    jobs,
		service: NewJobService(jobs, applications, users),
	}
}

func validCreateJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       "Backend Intern",
		Description: "Build and operate Go services with a small product team.",
		Location:    "Berlin",
	}
}

func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCreateJobDefaults(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")

	job, err := f.service.Create(company.ID, validCreateJobRequest())
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, job.Status)
	assert.Equal(t, models.ListingPriorityNormal, job.Priority)
	assert.Equal(t, 1, job.SpotsAvailable)
}

func TestCreateJobStudentForbidden(t *testing.T) {
	f := newJobFixture()
	student := newTestStudent(f.users, "alice")

	_, err := f.service.Create(student.ID, validCreateJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestCreateJobRejectsInvertedSalaryRange(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")

	req := validCreateJobRequest()
	low, high := 2000.0, 4000.0
	req.SalaryMin = &high
	req.SalaryMax = &low

	_, err := f.service.Create(company.ID, req)
	assertBadRequest(t, err)
}

func TestCreateJobRejectsPastDeadline(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")

	req := validCreateJobRequest()
	past := time.Now().Add(-time.Hour)
	req.Deadline = &past

	_, err := f.service.Create(company.ID, req)
	assertBadRequest(t, err)
}

func TestCreateJobResolvesCategoryBySlug(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	require.NoError(t, f.jobs.CreateCategory(&models.JobCategory{Name: "Engineering", Slug: "engineering"}))

	req := validCreateJobRequest()
	req.CategorySlug = "engineering"

	job, err := f.service.Create(company.ID, req)
	require.NoError(t, err)
	require.NotNil(t, job.Category)
	assert.Equal(t, "engineering", job.Category.Slug)

	req = validCreateJobRequest()
	req.CategorySlug = "does-not-exist"
	_, err = f.service.Create(company.ID, req)
	assert.Error(t, err)
}

func TestGetHidesInactiveListingsFromNonOwners(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Paused Role", Status: models.ListingStatusPaused})

	_, err := f.service.Get(student.ID, job.ID)
	assert.Error(t, err)

	// The owner still sees it.
	found, err := f.service.Get(company.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusPaused, found.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	paused, err := f.service.UpdateStatus(company.ID, job.ID, models.ListingStatusPaused)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusPaused, paused.Status)

	resumed, err := f.service.UpdateStatus(company.ID, job.ID, models.ListingStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, resumed.Status)

	_, err = f.service.UpdateStatus(company.ID, job.ID, models.ListingStatusClosed)
	require.NoError(t, err)

	// Closed is terminal.
	_, err = f.service.UpdateStatus(company.ID, job.ID, models.ListingStatusActive)
	assert.ErrorIs(t, err, apperrors.ErrInvalidListingStatus)
}

func TestListingUpdateStatusOwnerOnly(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	intruder := newTestCompany(f.users, "initech")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	_, err := f.service.UpdateStatus(intruder.ID, job.ID, models.ListingStatusPaused)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestUpdateRejectsInvertedSalaryRange(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	low := 2000.0
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern", SalaryMax: &low})

	high := 4000.0
	_, err := f.service.Update(company.ID, job.ID, &dto.UpdateJobRequest{SalaryMin: &high})
	assertBadRequest(t, err)
}

func TestSearchReturnsOnlyActiveListings(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Active Role"})
	f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Paused Role", Status: models.ListingStatusPaused})

	resp, err := f.service.Search(&dto.JobSearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestListByCompanyVisibility(t *testing.T) {
	f := newJobFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Active Role"})
	f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Paused Role", Status: models.ListingStatusPaused})

	asOwner, err := f.service.ListByCompany(company.ID, company.ID, &dto.PaginationQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), asOwner.Total)

	asVisitor, err := f.service.ListByCompany(student.ID, company.ID, &dto.PaginationQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), asVisitor.Total)
}
