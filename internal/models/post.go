package models

// Post is a feed entry visible to all users.
type Post struct {
	BaseModel
	AuthorID string   `gorm:"not null;index" json:"author_id"`
	Author   *User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content  string   `gorm:"not null" json:"content"`
	PostType PostType `gorm:"type:varchar(10);default:'text'" json:"post_type"`
	ImageURL string   `json:"image_url,omitempty"`
	VideoURL string   `json:"video_url,omitempty"`
	Location string   `json:"location,omitempty"`
	Hashtags string   `json:"hashtags,omitempty"`
	IsActive bool     `gorm:"default:true;index" json:"is_active"`

	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// Like is unique per (user, post); the storage index resolves toggle races.
type Like struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PostID string `gorm:"not null;index;uniqueIndex:idx_user_post" json:"post_id"`
}

type Comment struct {
	BaseModel
	UserID   string  `gorm:"not null;index" json:"user_id"`
	User     *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PostID   string  `gorm:"not null;index" json:"post_id"`
	Content  string  `gorm:"not null" json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Follow is unique per (follower, following).
type Follow struct {
	BaseModel
	FollowerID  string `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID string `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"following_id"`
}
