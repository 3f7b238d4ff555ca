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

func TestStudentBoardIsStudentOnly(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	companyToken, _ := helpers.CreateAndLoginCompany(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodGet, "/api/v1/students/board", companyToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, resBody)
}

func TestStudentBoardPost(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/students/board", token, map[string]interface{}{
		"title":     "Study partners for algorithms",
		"content":   "Anyone up for weekly leetcode sessions?",
		"post_type": "study_group",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/students/board?type=study_group", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var page struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &page))
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Study partners for algorithms", page.Items[0].Title)
}

func TestStudyGroupJoinAndCapacity(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	creatorToken, _ := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/students/groups", creatorToken, map[string]interface{}{
		"name":        "Databases crew",
		"subject":     "Databases",
		"max_members": 2,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var group struct {
		ID          string `json:"id"`
		MemberCount int64  `json:"member_count"`
		IsMember    bool   `json:"is_member"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &group))
	assert.Equal(t, int64(1), group.MemberCount, "the creator joins automatically")
	assert.True(t, group.IsMember)

	joinPath := fmt.Sprintf("/api/v1/students/groups/%s/join", group.ID)

	secondToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, resBody = ts.SendRequest(t, http.MethodPost, joinPath, secondToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	// Joining twice is a conflict.
	res, resBody = ts.SendRequest(t, http.MethodPost, joinPath, secondToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)

	// The group is now full.
	thirdToken, _ := helpers.CreateAndLoginStudent(t, ts)
	res, resBody = ts.SendRequest(t, http.MethodPost, joinPath, thirdToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)

	// Leaving frees a spot.
	res, resBody = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/students/groups/%s/leave", group.ID), secondToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodPost, joinPath, thirdToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, resBody)
}

func TestConnectionFlow(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	requesterToken, requester := helpers.CreateAndLoginStudent(t, ts)
	addresseeToken, addressee := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/students/connections", requesterToken, map[string]interface{}{
		"addressee_id": addressee.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var connection struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &connection))
	assert.Equal(t, "pending", connection.Status)

	// The reverse request is a duplicate.
	res, resBody = ts.SendRequest(t, http.MethodPost, "/api/v1/students/connections", addresseeToken, map[string]interface{}{
		"addressee_id": requester.ID,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)

	// Only the addressee may accept.
	acceptPath := fmt.Sprintf("/api/v1/students/connections/%s/accept", connection.ID)
	res, resBody = ts.SendRequest(t, http.MethodPost, acceptPath, requesterToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, resBody)

	res, resBody = ts.SendRequest(t, http.MethodPost, acceptPath, addresseeToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var accepted struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &accepted))
	assert.Equal(t, "accepted", accepted.Status)

	// Both sides see the accepted connection.
	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/students/connections?status=accepted", requesterToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var listing struct {
		Connections []struct {
			ID string `json:"id"`
		} `json:"connections"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &listing))
	assert.Len(t, listing.Connections, 1)
}

func TestCannotConnectSelf(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/students/connections", token, map[string]interface{}{
		"addressee_id": user.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, resBody)
}
