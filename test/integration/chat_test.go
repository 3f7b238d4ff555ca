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

func TestStartConversationIsGetOrCreate(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	aliceToken, _ := helpers.CreateAndLoginStudent(t, ts)
	_, bob := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/conversations", aliceToken, map[string]interface{}{
		"recipient_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var first struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &first))

	res, resBody = ts.SendRequest(t, http.MethodPost, "/api/v1/conversations", aliceToken, map[string]interface{}{
		"recipient_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var second struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &second))
	assert.Equal(t, first.ID, second.ID)
}

func TestCannotMessageSelf(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/conversations", token, map[string]interface{}{
		"recipient_id": user.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, resBody)
}

func TestMessageFlowAndUnreadCounts(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	aliceToken, _ := helpers.CreateAndLoginStudent(t, ts)
	bobToken, bob := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/conversations", aliceToken, map[string]interface{}{
		"recipient_id": bob.ID,
		"message":      "Hi Bob!",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var conversation struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &conversation))

	res, resBody = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/conversations/%s/messages", conversation.ID), aliceToken, map[string]interface{}{
		"content": "Are you around?",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	// Bob sees two unread messages.
	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/conversations/unread", bobToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var unread struct {
		Unread int64 `json:"unread"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &unread))
	assert.Equal(t, int64(2), unread.Unread)

	res, resBody = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/conversations/%s/read", conversation.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var marked struct {
		MarkedCount int64 `json:"marked_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &marked))
	assert.Equal(t, int64(2), marked.MarkedCount)

	res, resBody = ts.SendRequest(t, http.MethodGet, "/api/v1/conversations/unread", bobToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)
	require.NoError(t, json.Unmarshal([]byte(resBody), &unread))
	assert.Equal(t, int64(0), unread.Unread)
}

func TestConversationAccessDenied(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	aliceToken, _ := helpers.CreateAndLoginStudent(t, ts)
	_, bob := helpers.CreateAndLoginStudent(t, ts)
	strangerToken, _ := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/conversations", aliceToken, map[string]interface{}{
		"recipient_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var conversation struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &conversation))

	res, resBody = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/conversations/%s/messages", conversation.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, resBody)
}
