package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalab_backend/test/helpers"
)

func createStory(t *testing.T, ts *helpers.TestServer, token, title string, highlighted bool) string {
	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/stories", token, map[string]interface{}{
		"title":          title,
		"content":        "Story content",
		"is_highlighted": highlighted,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var story struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &story))
	return story.ID
}

func TestStoriesBarTracksViews(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	authorToken, _ := helpers.CreateAndLoginStudent(t, ts)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts)

	storyID := createStory(t, ts, authorToken, "Demo day", false)

	res, resBody := ts.SendRequest(t, http.MethodGet, "/api/v1/stories", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var bar struct {
		Stories []struct {
			UnviewedCount int64 `json:"unviewed_count"`
		} `json:"stories"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &bar))
	require.Len(t, bar.Stories, 1)
	assert.Equal(t, int64(1), bar.Stories[0].UnviewedCount)

	// Viewing twice is idempotent.
	viewPath := fmt.Sprintf("/api/v1/stories/%s/view", storyID)
	res, resBody = ts.SendRequest(t, http.MethodPost, viewPath, viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)
	res, resBody = ts.SendRequest(t, http.MethodPost, viewPath, viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/stories", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)
	require.NoError(t, json.Unmarshal([]byte(resBody), &bar))
	require.Len(t, bar.Stories, 1)
	assert.Equal(t, int64(0), bar.Stories[0].UnviewedCount)
}

func TestExpiredStoryHiddenFromOthers(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	authorToken, _ := helpers.CreateAndLoginStudent(t, ts)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts)

	storyID := createStory(t, ts, authorToken, "Short lived", false)
	require.NoError(t, ts.DB.Exec(`UPDATE stories SET expires_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour), storyID).Error)

	res, resBody := ts.SendRequest(t, http.MethodGet, "/api/v1/stories/"+storyID, viewerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, resBody)

	// The author still sees their own expired story.
	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/stories/"+storyID, authorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, resBody)
}

func TestHighlightsSurviveExpiry(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	authorToken, author := helpers.CreateAndLoginStudent(t, ts)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts)

	storyID := createStory(t, ts, authorToken, "Pinned highlight", true)
	require.NoError(t, ts.DB.Exec(`UPDATE stories SET expires_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour), storyID).Error)

	res, resBody := ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%s/highlights", author.ID), viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var highlights struct {
		Highlights []struct {
			ID string `json:"id"`
		} `json:"highlights"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &highlights))
	require.Len(t, highlights.Highlights, 1)
	assert.Equal(t, storyID, highlights.Highlights[0].ID)
}

func TestOnlyAuthorDeletesStory(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	authorToken, _ := helpers.CreateAndLoginStudent(t, ts)
	otherToken, _ := helpers.CreateAndLoginStudent(t, ts)

	storyID := createStory(t, ts, authorToken, "Mine", false)

	res, resBody := ts.SendRequest(t, http.MethodDelete, "/api/v1/stories/"+storyID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodDelete, "/api/v1/stories/"+storyID, authorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, resBody)
}
