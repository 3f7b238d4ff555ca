package dto

import (
	"time"

	"instalab_backend/internal/models"
)

type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Nickname string          `json:"nickname" binding:"required,min=3,max=30"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=student company"`

	// Company fields
	CompanyName string `json:"company_name,omitempty" binding:"required_if=Role company"`

	// Student fields
	Course     string `json:"course,omitempty" binding:"required_if=Role student"`
	University string `json:"university,omitempty" binding:"required_if=Role student"`
	Semester   string `json:"semester,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// UserDTO is the public view of an account.
type UserDTO struct {
	ID        string            `json:"id"`
	Email     string            `json:"email,omitempty"`
	Nickname  string            `json:"nickname"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	Bio       string            `json:"bio,omitempty"`
	Website   string            `json:"website,omitempty"`
	CreatedAt time.Time         `json:"created_at"`

	// Company fields
	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyInstagram   string `json:"company_instagram,omitempty"`

	// Student fields
	Course     string `json:"course,omitempty"`
	University string `json:"university,omitempty"`
	Semester   string `json:"semester,omitempty"`
}

// ToUserDTO maps a model to its public view. Email is included only when the
// caller views their own account.
func ToUserDTO(user *models.User, includeEmail bool) UserDTO {
	d := UserDTO{
		ID:                 user.ID,
		Nickname:           user.Nickname,
		Role:               user.Role,
		Status:             user.Status,
		Bio:                user.Bio,
		Website:            user.Website,
		CreatedAt:          user.CreatedAt,
		CompanyName:        user.CompanyName,
		CompanyDescription: user.CompanyDescription,
		CompanyWebsite:     user.CompanyWebsite,
		CompanyInstagram:   user.CompanyInstagram,
		Course:             user.Course,
		University:         user.University,
		Semester:           user.Semester,
	}
	if includeEmail {
		d.Email = user.Email
	}
	return d
}
