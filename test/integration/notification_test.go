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

func TestApplicationCreatesNotification(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	companyToken, company := helpers.CreateAndLoginCompany(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, company.ID, "Backend Intern")

	res, resBody := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", job.ID), studentToken, map[string]interface{}{
		"cover_letter": helpers.CoverLetter(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread", companyToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &unread))
	assert.Equal(t, int64(1), unread.UnreadCount)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	companyToken, company := helpers.CreateAndLoginCompany(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, company.ID, "Backend Intern")

	for i := 0; i < 2; i++ {
		studentToken, _ := helpers.CreateAndLoginStudent(t, ts)
		res, resBody := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/apply", job.ID), studentToken, map[string]interface{}{
			"cover_letter": helpers.CoverLetter(),
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, resBody)
	}

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/read", companyToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var marked struct {
		Marked int64 `json:"marked"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &marked))
	assert.Equal(t, int64(2), marked.Marked)

	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", companyToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var page struct {
		Items []struct {
			IsRead bool `json:"is_read"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &page))
	require.Len(t, page.Items, 2)
	for _, n := range page.Items {
		assert.True(t, n.IsRead)
	}
}
