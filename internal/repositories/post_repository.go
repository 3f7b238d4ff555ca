package repositories

import (
	"errors"
	"time"

	"instalab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrDuplicateLike   = errors.New("post already liked by this user")
	ErrFollowNotFound  = errors.New("follow relation not found")
	ErrDuplicateFollow = errors.New("follow relation already exists")
)

type PostRepository interface {
	// Post operations
	Create(post *models.Post) error
	FindByID(id string) (*models.Post, error)
	Update(post *models.Post) error
	Deactivate(postID string) error
	FindFeed(limit, offset int) ([]models.Post, int64, error)
	FindFollowingFeed(followerID string, limit, offset int) ([]models.Post, int64, error)
	FindByAuthor(authorID string, limit, offset int) ([]models.Post, int64, error)

	// Like operations
	CreateLike(like *models.Like) error
	DeleteLike(userID, postID string) error
	CountLikes(postID string) (int64, error)
	IsLikedBy(userID, postID string) (bool, error)

	// Comment operations
	CreateComment(comment *models.Comment) error
	FindCommentByID(id string) (*models.Comment, error)
	DeleteComment(commentID string) error
	FindCommentsByPost(postID string, limit, offset int) ([]models.Comment, int64, error)

	// Follow operations
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	FindFollowers(userID string, limit, offset int) ([]models.User, int64, error)
	FindFollowing(userID string, limit, offset int) ([]models.User, int64, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
}

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

// Post operations

func (r *PostRepositoryImpl) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepositoryImpl) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").First(&post, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Update(post *models.Post) error {
	result := r.db.Model(post).Updates(map[string]interface{}{
		"content":    post.Content,
		"image_url":  post.ImageURL,
		"video_url":  post.VideoURL,
		"location":   post.Location,
		"hashtags":   post.Hashtags,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) Deactivate(postID string) error {
	result := r.db.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) FindFeed(limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	query := r.db.Model(&models.Post{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

func (r *PostRepositoryImpl) FindFollowingFeed(followerID string, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	followed := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID)
	query := r.db.Model(&models.Post{}).
		Where("is_active = ?", true).
		Where("author_id IN (?) OR author_id = ?", followed, followerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

func (r *PostRepositoryImpl) FindByAuthor(authorID string, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	query := r.db.Model(&models.Post{}).Where("author_id = ? AND is_active = ?", authorID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

// Like operations

func (r *PostRepositoryImpl) CreateLike(like *models.Like) error {
	err := r.db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateLike
	}
	return err
}

func (r *PostRepositoryImpl) DeleteLike(userID, postID string) error {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostRepositoryImpl) IsLikedBy(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// Comment operations

func (r *PostRepositoryImpl) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostRepositoryImpl) FindCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *PostRepositoryImpl) DeleteComment(commentID string) error {
	result := r.db.Where("id = ?", commentID).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) FindCommentsByPost(postID string, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	query := r.db.Model(&models.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&comments).Error
	return comments, total, err
}

// Follow operations

func (r *PostRepositoryImpl) CreateFollow(follow *models.Follow) error {
	err := r.db.Create(follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateFollow
	}
	return err
}

func (r *PostRepositoryImpl) DeleteFollow(followerID, followingID string) error {
	result := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error
	return count > 0, err
}

func (r *PostRepositoryImpl) FindFollowers(userID string, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("follows.created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *PostRepositoryImpl) FindFollowing(userID string, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("follows.created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *PostRepositoryImpl) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostRepositoryImpl) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
