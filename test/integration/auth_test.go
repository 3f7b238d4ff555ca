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

func registerBody(role string) map[string]interface{} {
	suffix := time.Now().UnixNano()
	body := map[string]interface{}{
		"email":    fmt.Sprintf("reg_%d@test.com", suffix),
		"nickname": fmt.Sprintf("reg_%d", suffix),
		"password": "password123",
		"role":     role,
	}
	if role == "company" {
		body["company_name"] = "Acme Inc."
	} else {
		body["course"] = "Computer Science"
		body["university"] = "Test University"
	}
	return body
}

func TestRegisterStudent(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	body := registerBody("student")
	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, resBody)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, body["email"], resp.User.Email)
	assert.Equal(t, "student", resp.User.Role)
}

func TestRegisterCompanyRequiresCompanyName(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	body := registerBody("company")
	delete(body, "company_name")

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, resBody)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	body := registerBody("student")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body["nickname"] = body["nickname"].(string) + "_other"
	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, resBody)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, user := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, resBody)
}

func TestRefreshTokenRotation(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	body := registerBody("student")
	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var registered struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &registered))

	res, resBody = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": registered.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	var refreshed struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &refreshed))
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// Rotation invalidates the old token.
	res, resBody = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, resBody)
}

func TestChangePassword(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginStudent(t, ts)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "password123",
		"new_password":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, resBody)

	// Old password no longer works.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
