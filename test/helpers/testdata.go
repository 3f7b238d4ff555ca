package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"instalab_backend/internal/models"
)

// CreateUser inserts a user, hashing the password when a raw one is given.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashed)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	if err := db.Create(user).Error; err != nil {
		t.Logf("failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// CreateAndLoginUser creates a user and logs in through the API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, db *gorm.DB, nickname, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Nickname:     nickname,
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	if role == models.UserRoleCompany {
		user.CompanyName = nickname + " Inc."
	} else {
		user.Course = "Computer Science"
		user.University = "Test University"
	}

	err := CreateUser(t, ts.DB, user)
	assert.NoError(t, err, "creating a test user must not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+body)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(body), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginStudent creates a student with a unique email.
func CreateAndLoginStudent(t *testing.T, ts *TestServer) (string, *models.User) {
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("student_%d@test.com", suffix)
	nickname := fmt.Sprintf("student_%d", suffix)
	return CreateAndLoginUser(t, ts, ts.DB, nickname, email, "password123", models.UserRoleStudent)
}

// CreateAndLoginCompany creates a company account with a unique email.
func CreateAndLoginCompany(t *testing.T, ts *TestServer) (string, *models.User) {
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("company_%d@test.com", suffix)
	nickname := fmt.Sprintf("company_%d", suffix)
	return CreateAndLoginUser(t, ts, ts.DB, nickname, email, "password123", models.UserRoleCompany)
}

// CreateTestJob inserts an active listing owned by companyID.
func CreateTestJob(t *testing.T, db *gorm.DB, companyID, title string) models.JobListing {
	job := models.JobListing{
		CompanyID:      companyID,
		Title:          title,
		Description:    "Test description",
		SpotsAvailable: 2,
		Location:       "Berlin",
		Status:         models.ListingStatusActive,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("failed to create test job: %v", err)
	}
	return job
}

// CreateTestPost inserts an active feed post.
func CreateTestPost(t *testing.T, db *gorm.DB, authorID, content string) models.Post {
	post := models.Post{
		AuthorID: authorID,
		Content:  content,
		PostType: models.PostTypeText,
		IsActive: true,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CoverLetter returns filler text long enough to pass validation.
func CoverLetter() string {
	return strings.Repeat("I am a highly motivated applicant. ", 4)
}
