package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalab_backend/test/helpers"
)

func TestCreateJobRequiresCompanyRole(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", studentToken, map[string]interface{}{
		"title":       "Backend Intern",
		"description": "Build APIs with us in a small product team",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, resBody)
}

func TestJobLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	companyToken, _ := helpers.CreateAndLoginCompany(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", companyToken, map[string]interface{}{
		"title":           "Backend Intern",
		"description":     "Build APIs with us in a small product team",
		"location":        "Berlin",
		"spots_available": 2,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var job struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &job))
	assert.Equal(t, "active", job.Status)

	// Pause, then close. Closed is terminal.
	res, resBody = ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID+"/status", companyToken, map[string]interface{}{
		"status": "paused",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID+"/status", companyToken, map[string]interface{}{
		"status": "closed",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID+"/status", companyToken, map[string]interface{}{
		"status": "active",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)
}

func TestJobSearchShowsOnlyActiveListings(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, company := helpers.CreateAndLoginCompany(t, ts)
	active := helpers.CreateTestJob(t, ts.DB, company.ID, "Active Role")
	paused := helpers.CreateTestJob(t, ts.DB, company.ID, "Paused Role")
	require.NoError(t, ts.DB.Model(&paused).Update("status", "paused").Error)

	res, resBody := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &page))
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, active.ID, page.Items[0].ID)
}

func TestApplicationLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	companyToken, company := helpers.CreateAndLoginCompany(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, company.ID, "Backend Intern")

	applyPath := fmt.Sprintf("/api/v1/jobs/%s/apply", job.ID)

	// Cover letter too short.
	res, resBody := ts.SendRequest(t, http.MethodPost, applyPath, studentToken, map[string]interface{}{
		"cover_letter": "Too short.",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodPost, applyPath, studentToken, map[string]interface{}{
		"cover_letter": helpers.CoverLetter(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &application))
	assert.Equal(t, "applied", application.Status)

	// Applying twice is a conflict.
	res, resBody = ts.SendRequest(t, http.MethodPost, applyPath, studentToken, map[string]interface{}{
		"cover_letter": helpers.CoverLetter(),
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)

	// The company walks the status machine forward.
	statusPath := fmt.Sprintf("/api/v1/applications/%s/status", application.ID)
	for _, status := range []string{"reviewing", "interview", "accepted"} {
		res, resBody = ts.SendRequest(t, http.MethodPut, statusPath, companyToken, map[string]interface{}{
			"status": status,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, resBody)
	}

	// Accepted is terminal.
	res, resBody = ts.SendRequest(t, http.MethodPut, statusPath, companyToken, map[string]interface{}{
		"status": "reviewing",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)
}

func TestApplicationWithdraw(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, company := helpers.CreateAndLoginCompany(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, company.ID, "Backend Intern")

	res, resBody := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", job.ID), studentToken, map[string]interface{}{
		"cover_letter": helpers.CoverLetter(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var application struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &application))

	withdrawPath := fmt.Sprintf("/api/v1/applications/%s/withdraw", application.ID)
	res, resBody = ts.SendRequest(t, http.MethodPost, withdrawPath, studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var withdrawn struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &withdrawn))
	assert.Equal(t, "withdrawn", withdrawn.Status)

	// Withdrawing again fails, the status is terminal.
	res, resBody = ts.SendRequest(t, http.MethodPost, withdrawPath, studentToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)
}

func TestApplyRejectedWhenNoSpotsRemain(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	companyToken, company := helpers.CreateAndLoginCompany(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, company.ID, "Single Spot Role")
	require.NoError(t, ts.DB.Model(&job).Update("spots_available", 1).Error)

	firstToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, resBody := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", job.ID), firstToken, map[string]interface{}{
		"cover_letter": helpers.CoverLetter(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var application struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &application))

	res, resBody = ts.SendRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/applications/%s/status", application.ID), companyToken, map[string]interface{}{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	secondToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, resBody = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", job.ID), secondToken, map[string]interface{}{
		"cover_letter": helpers.CoverLetter(),
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)
}
