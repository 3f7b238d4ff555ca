package models

import "time"

// User is a platform account. Role is exclusive: an account is either a
// student or a company, never both. Role-conditional fields are required at
// registration time only; the storage layer tolerates inconsistent rows.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Nickname     string     `gorm:"uniqueIndex;not null" json:"nickname"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	Bio     string `json:"bio"`
	Website string `json:"website"`

	// Company fields
	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyInstagram   string `json:"company_instagram,omitempty"`

	// Student fields
	Course     string `json:"course,omitempty"`
	University string `json:"university,omitempty"`
	Semester   string `json:"semester,omitempty"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) IsStudent() bool { return u.Role == UserRoleStudent }
func (u *User) IsCompany() bool { return u.Role == UserRoleCompany }

// DisplayName prefers the company name for company accounts.
func (u *User) DisplayName() string {
	if u.IsCompany() && u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Nickname
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
