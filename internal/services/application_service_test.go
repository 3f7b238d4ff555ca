package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalab_backend/internal/models"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

type applicationFixture struct {
	users         *fakeUserRepo
	jobs          *fakeJobRepo
	applications  *fakeApplicationRepo
	notifications *fakeNotificationRepo
	service       ApplicationService
}

func newApplicationFixture() *applicationFixture {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	applications := newFakeApplicationRepo(jobs, users)
	notifications := newFakeNotificationRepo()

	return &applicationFixture{
		users:         users,
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
		service:       NewApplicationService(applications, jobs, users, newTestNotificationService(notifications)),
	}
}

func validApplyRequest() *dto.ApplyRequest {
	return &dto.ApplyRequest{
		CoverLetter: "I am a very motivated applicant with relevant coursework and a strong interest in this position.",
	}
}

func TestApplyHappyPath(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern", SpotsAvailable: 2})

	result, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, result.Status)

	// The listing owner is notified.
	assert.Len(t, f.notifications.forUser(company.ID), 1)
}

func TestApplyRejectsCompanies(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	other := newTestCompany(f.users, "initech")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	_, err := f.service.Apply(context.Background(), other.ID, job.ID, validApplyRequest())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestApplyRejectsInactiveListing(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Paused Role", Status: models.ListingStatusPaused})

	_, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	assert.ErrorIs(t, err, apperrors.ErrListingNotActive)
}

func TestApplyRejectsPassedDeadline(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	past := time.Now().Add(-time.Hour)
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Late Role", Deadline: &past})

	_, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestApplyRejectsDuplicate(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	_, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	assert.ErrorIs(t, err, apperrors.ErrApplicationAlreadyExists)
}

func TestApplyFailsWhenDuplicateCheckErrors(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	// A failing duplicate lookup must surface as an internal error, not be
	// mistaken for "no existing application".
	f.applications.findPairErr = errors.New("connection reset")

	_, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestApplyRejectsWhenSpotsFilled(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	accepted := newTestStudent(f.users, "winner")
	applicant := newTestStudent(f.users, "late")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Single Spot", SpotsAvailable: 1})

	_, err := f.service.Apply(context.Background(), accepted.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	existing, err := f.applications.FindByJobAndApplicant(job.ID, accepted.ID)
	require.NoError(t, err)
	require.NoError(t, f.applications.UpdateStatus(existing.ID, models.ApplicationStatusAccepted, ""))

	_, err = f.service.Apply(context.Background(), applicant.ID, job.ID, validApplyRequest())
	assert.ErrorIs(t, err, apperrors.ErrNoSpotsRemaining)
}

func TestUpdateStatusWalksForwardOnly(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern", SpotsAvailable: 2})

	created, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	ctx := context.Background()
	for _, status := range []models.ApplicationStatus{
		models.ApplicationStatusReviewing,
		models.ApplicationStatusInterview,
		models.ApplicationStatusAccepted,
	} {
		result, err := f.service.UpdateStatus(ctx, company.ID, created.ID, &dto.UpdateApplicationStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, result.Status)
	}

	// Accepted is terminal; going backwards fails.
	_, err = f.service.UpdateStatus(ctx, company.ID, created.ID, &dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusReviewing})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)

	// The applicant was notified once per transition, plus the initial apply
	// notification went to the company.
	assert.Len(t, f.notifications.forUser(student.ID), 3)
}

func TestUpdateStatusRejectsWithdrawnTarget(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	created, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), company.ID, created.ID, &dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusWithdrawn})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
}

func TestUpdateStatusOwnerOnly(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	intruder := newTestCompany(f.users, "initech")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	created, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), intruder.ID, created.ID, &dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusReviewing})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestAcceptRespectsSpots(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	first := newTestStudent(f.users, "first")
	second := newTestStudent(f.users, "second")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Single Spot", SpotsAvailable: 1})

	ctx := context.Background()
	firstApp, err := f.service.Apply(ctx, first.ID, job.ID, validApplyRequest())
	require.NoError(t, err)
	secondApp, err := f.service.Apply(ctx, second.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, company.ID, firstApp.ID, &dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusAccepted})
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, company.ID, secondApp.ID, &dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusAccepted})
	assert.ErrorIs(t, err, apperrors.ErrNoSpotsRemaining)
}

func TestWithdrawIsApplicantOnly(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	other := newTestStudent(f.users, "bob")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern"})

	created, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = f.service.Withdraw(context.Background(), other.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	result, err := f.service.Withdraw(context.Background(), student.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWithdrawn, result.Status)

	// Terminal, cannot withdraw twice.
	_, err = f.service.Withdraw(context.Background(), student.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
}

func TestCompanyNotesHiddenFromApplicant(t *testing.T) {
	f := newApplicationFixture()
	company := newTestCompany(f.users, "acme")
	student := newTestStudent(f.users, "alice")
	job := f.jobs.add(&models.JobListing{CompanyID: company.ID, Title: "Backend Intern", SpotsAvailable: 2})

	created, err := f.service.Apply(context.Background(), student.ID, job.ID, validApplyRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), company.ID, created.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusReviewing,
		Notes:  "Strong profile, schedule a call",
	})
	require.NoError(t, err)

	asApplicant, err := f.service.Get(student.ID, created.ID)
	require.NoError(t, err)
	assert.Empty(t, asApplicant.CompanyNotes)

	asOwner, err := f.service.Get(company.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Strong profile, schedule a call", asOwner.CompanyNotes)
}
