package dto

import (
	"time"

	"instalab_backend/internal/models"
)

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	PostType string `json:"post_type,omitempty" binding:"omitempty,oneof=text photo project"`
	ImageURL string `json:"image_url,omitempty" binding:"omitempty,url"`
	VideoURL string `json:"video_url,omitempty" binding:"omitempty,url"`
	Location string `json:"location,omitempty"`
	Hashtags string `json:"hashtags,omitempty"`
}

type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty" binding:"omitempty,min=1,max=5000"`
	ImageURL *string `json:"image_url,omitempty" binding:"omitempty,url"`
	VideoURL *string `json:"video_url,omitempty" binding:"omitempty,url"`
	Location *string `json:"location,omitempty"`
	Hashtags *string `json:"hashtags,omitempty"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=1000"`
	ParentID *string `json:"parent_id,omitempty"`
}

type FeedQuery struct {
	PaginationQuery
	// following limits the feed to followed authors.
	Scope string `form:"scope" binding:"omitempty,oneof=all following"`
}

type PostDTO struct {
	ID           string          `json:"id"`
	Author       UserDTO         `json:"author"`
	Content      string          `json:"content"`
	PostType     models.PostType `json:"post_type"`
	ImageURL     string          `json:"image_url,omitempty"`
	VideoURL     string          `json:"video_url,omitempty"`
	Location     string          `json:"location,omitempty"`
	Hashtags     string          `json:"hashtags,omitempty"`
	LikeCount    int64           `json:"like_count"`
	CommentCount int64           `json:"comment_count"`
	IsLikedByMe  bool            `json:"is_liked_by_me"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToPostDTO(post *models.Post, likeCount, commentCount int64, likedByMe bool) PostDTO {
	d := PostDTO{
		ID:           post.ID,
		Content:      post.Content,
		PostType:     post.PostType,
		ImageURL:     post.ImageURL,
		VideoURL:     post.VideoURL,
		Location:     post.Location,
		Hashtags:     post.Hashtags,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		IsLikedByMe:  likedByMe,
		CreatedAt:    post.CreatedAt,
	}
	if post.Author != nil {
		d.Author = ToUserDTO(post.Author, false)
	}
	return d
}

type CommentDTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	User      UserDTO   `json:"user"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCommentDTO(comment *models.Comment) CommentDTO {
	d := CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		d.User = ToUserDTO(comment.User, false)
	}
	return d
}

type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type FollowResponse struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}
