package dto

type UpdateProfileRequest struct {
	Nickname *string `json:"nickname,omitempty" binding:"omitempty,min=3,max=30"`
	Bio      *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Website  *string `json:"website,omitempty" binding:"omitempty,url"`

	// Company fields
	CompanyName        *string `json:"company_name,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty" binding:"omitempty,max=2000"`
	CompanyWebsite     *string `json:"company_website,omitempty" binding:"omitempty,url"`
	CompanyInstagram   *string `json:"company_instagram,omitempty"`

	// Student fields
	Course     *string `json:"course,omitempty"`
	University *string `json:"university,omitempty"`
	Semester   *string `json:"semester,omitempty"`
}

type UserSearchQuery struct {
	PaginationQuery
	Query string `form:"q" binding:"required,min=2"`
}

// ProfileResponse is a user plus their social counters.
type ProfileResponse struct {
	User           UserDTO `json:"user"`
	PostCount      int64   `json:"post_count"`
	FollowerCount  int64   `json:"follower_count"`
	FollowingCount int64   `json:"following_count"`
	IsFollowedByMe bool    `json:"is_followed_by_me"`
}
