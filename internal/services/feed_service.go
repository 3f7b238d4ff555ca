package services

import (
	"context"

	"instalab_backend/internal/models"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

type FeedService interface {
	CreatePost(authorID string, req *dto.CreatePostRequest) (*dto.PostDTO, error)
	GetPost(viewerID, postID string) (*dto.PostDTO, error)
	UpdatePost(authorID, postID string, req *dto.UpdatePostRequest) (*dto.PostDTO, error)
	DeletePost(authorID, postID string) error
	Feed(viewerID string, query *dto.FeedQuery) (*dto.PaginatedResponse, error)
	UserPosts(viewerID, authorID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)

	Like(viewerID, postID string) (*dto.LikeResponse, error)
	Unlike(viewerID, postID string) (*dto.LikeResponse, error)

	Comment(viewerID, postID string, req *dto.CreateCommentRequest) (*dto.CommentDTO, error)
	DeleteComment(viewerID, commentID string) error
	Comments(postID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)

	Follow(ctx context.Context, followerID, followingID string) (*dto.FollowResponse, error)
	Unfollow(followerID, followingID string) (*dto.FollowResponse, error)
	Followers(userID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)
	Following(userID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)
}

type FeedServiceImpl struct {
	postRepo      repositories.PostRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewFeedService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) FeedService {
	return &FeedServiceImpl{
		postRepo:      postRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *FeedServiceImpl) CreatePost(authorID string, req *dto.CreatePostRequest) (*dto.PostDTO, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  req.Content,
		PostType: models.PostTypeText,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		Location: req.Location,
		Hashtags: req.Hashtags,
		IsActive: true,
	}
	if req.PostType != "" {
		post.PostType = models.PostType(req.PostType)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	post.Author = author

	d := dto.ToPostDTO(post, 0, 0, false)
	return &d, nil
}

func (s *FeedServiceImpl) GetPost(viewerID, postID string) (*dto.PostDTO, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	return s.toPostDTO(post, viewerID)
}

func (s *FeedServiceImpl) UpdatePost(authorID, postID string, req *dto.UpdatePostRequest) (*dto.PostDTO, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	if req.VideoURL != nil {
		post.VideoURL = *req.VideoURL
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Hashtags != nil {
		post.Hashtags = *req.Hashtags
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toPostDTO(post, authorID)
}

func (s *FeedServiceImpl) DeletePost(authorID, postID string) error {
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != authorID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.postRepo.Deactivate(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) Feed(viewerID string, query *dto.FeedQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()

	var (
		posts []models.Post
		total int64
		err   error
	)
	if query.Scope == "following" {
		posts, total, err = s.postRepo.FindFollowingFeed(viewerID, query.Limit(), query.Offset())
	} else {
		posts, total, err = s.postRepo.FindFeed(query.Limit(), query.Offset())
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, err := s.toPostDTOList(posts, viewerID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPaginatedResponse(items, total, query.Page, query.PageSize)
	return &resp, nil
}

func (s *FeedServiceImpl) UserPosts(viewerID, authorID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	posts, total, err := s.postRepo.FindByAuthor(authorID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, err := s.toPostDTOList(posts, viewerID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

// Like is idempotent at the storage level: the unique index resolves races
// and a duplicate maps to a domain error.
func (s *FeedServiceImpl) Like(viewerID, postID string) (*dto.LikeResponse, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	err := s.postRepo.CreateLike(&models.Like{UserID: viewerID, PostID: postID})
	if err != nil && !apperrors.Is(err, repositories.ErrDuplicateLike) {
		return nil, apperrors.InternalError(err)
	}
	if apperrors.Is(err, repositories.ErrDuplicateLike) {
		return nil, apperrors.ErrAlreadyLiked
	}

	count, err := s.postRepo.CountLikes(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LikeResponse{Liked: true, LikeCount: count}, nil
}

func (s *FeedServiceImpl) Unlike(viewerID, postID string) (*dto.LikeResponse, error) {
	err := s.postRepo.DeleteLike(viewerID, postID)
	if err != nil && !apperrors.Is(err, repositories.ErrLikeNotFound) {
		return nil, apperrors.InternalError(err)
	}

	count, err := s.postRepo.CountLikes(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LikeResponse{Liked: false, LikeCount: count}, nil
}

func (s *FeedServiceImpl) Comment(viewerID, postID string, req *dto.CreateCommentRequest) (*dto.CommentDTO, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.postRepo.FindCommentByID(*req.ParentID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrCommentNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if parent.PostID != postID {
			return nil, apperrors.NewBadRequestError("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		UserID:   viewerID,
		PostID:   postID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	if err := s.postRepo.CreateComment(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if user, err := s.userRepo.FindByID(viewerID); err == nil {
		comment.User = user
	}

	d := dto.ToCommentDTO(comment)
	return &d, nil
}

// DeleteComment allows the comment author or the post author.
func (s *FeedServiceImpl) DeleteComment(viewerID, commentID string) error {
	comment, err := s.postRepo.FindCommentByID(commentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if comment.UserID != viewerID {
		post, err := s.findPost(comment.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != viewerID {
			return apperrors.ErrInsufficientPermissions
		}
	}

	if err := s.postRepo.DeleteComment(commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) Comments(postID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	comments, total, err := s.postRepo.FindCommentsByPost(postID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.CommentDTO, 0, len(comments))
	for i := range comments {
		items = append(items, dto.ToCommentDTO(&comments[i]))
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *FeedServiceImpl) Follow(ctx context.Context, followerID, followingID string) (*dto.FollowResponse, error) {
	if followerID == followingID {
		return nil, apperrors.ErrCannotFollowSelf
	}

	follower, err := s.userRepo.FindByID(followerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByID(followingID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	err = s.postRepo.CreateFollow(&models.Follow{FollowerID: followerID, FollowingID: followingID})
	if err != nil && !apperrors.Is(err, repositories.ErrDuplicateFollow) {
		return nil, apperrors.InternalError(err)
	}

	if err == nil {
		s.notifications.Notify(ctx, &models.Notification{
			UserID:  followingID,
			Type:    models.NotificationTypeNewFollower,
			Title:   "New follower",
			Message: follower.Nickname + " started following you",
			Data:    NotificationData(map[string]interface{}{"follower_id": followerID}),
		}, nil)
	}

	count, err := s.postRepo.CountFollowers(followingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.FollowResponse{Following: true, FollowerCount: count}, nil
}

func (s *FeedServiceImpl) Unfollow(followerID, followingID string) (*dto.FollowResponse, error) {
	err := s.postRepo.DeleteFollow(followerID, followingID)
	if err != nil && !apperrors.Is(err, repositories.ErrFollowNotFound) {
		return nil, apperrors.InternalError(err)
	}

	count, err := s.postRepo.CountFollowers(followingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.FollowResponse{Following: false, FollowerCount: count}, nil
}

func (s *FeedServiceImpl) Followers(userID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	users, total, err := s.postRepo.FindFollowers(userID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.ToUserDTO(&users[i], false))
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *FeedServiceImpl) Following(userID string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	users, total, err := s.postRepo.FindFollowing(userID, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.ToUserDTO(&users[i], false))
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *FeedServiceImpl) findPost(postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *FeedServiceImpl) toPostDTO(post *models.Post, viewerID string) (*dto.PostDTO, error) {
	likeCount, err := s.postRepo.CountLikes(post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	_, commentCount, err := s.postRepo.FindCommentsByPost(post.ID, 1, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	liked := false
	if viewerID != "" {
		liked, err = s.postRepo.IsLikedBy(viewerID, post.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	d := dto.ToPostDTO(post, likeCount, commentCount, liked)
	return &d, nil
}

func (s *FeedServiceImpl) toPostDTOList(posts []models.Post, viewerID string) ([]dto.PostDTO, error) {
	items := make([]dto.PostDTO, 0, len(posts))
	for i := range posts {
		d, err := s.toPostDTO(&posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, nil
}
