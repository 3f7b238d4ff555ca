package services

import (
	"instalab_backend/internal/models"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(viewerID, userID string) (*dto.ProfileResponse, error)
	GetOwnAccount(userID string) (*dto.UserDTO, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	Search(query *dto.UserSearchQuery) (*dto.PaginatedResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
}

func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (s *UserServiceImpl) GetProfile(viewerID, userID string) (*dto.ProfileResponse, error) {
	user, err := s.findActiveUser(userID)
	if err != nil {
		return nil, err
	}

	_, postTotal, err := s.postRepo.FindByAuthor(userID, 1, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	followers, err := s.postRepo.CountFollowers(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	following, err := s.postRepo.CountFollowing(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	followedByMe := false
	if viewerID != "" && viewerID != userID {
		followedByMe, err = s.postRepo.IsFollowing(viewerID, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return &dto.ProfileResponse{
		User:           dto.ToUserDTO(user, viewerID == userID),
		PostCount:      postTotal,
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowedByMe: followedByMe,
	}, nil
}

func (s *UserServiceImpl) GetOwnAccount(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToUserDTO(user, true)
	return &d, nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Nickname != nil && *req.Nickname != user.Nickname {
		if _, err := s.userRepo.FindByNickname(*req.Nickname); err == nil {
			return nil, apperrors.ErrNicknameAlreadyExists
		}
		user.Nickname = *req.Nickname
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Website != nil {
		user.Website = *req.Website
	}

	if user.IsCompany() {
		if req.CompanyName != nil {
			user.CompanyName = *req.CompanyName
		}
		if req.CompanyDescription != nil {
			user.CompanyDescription = *req.CompanyDescription
		}
		if req.CompanyWebsite != nil {
			user.CompanyWebsite = *req.CompanyWebsite
		}
		if req.CompanyInstagram != nil {
			user.CompanyInstagram = *req.CompanyInstagram
		}
	}

	if user.IsStudent() {
		if req.Course != nil {
			user.Course = *req.Course
		}
		if req.University != nil {
			user.University = *req.University
		}
		if req.Semester != nil {
			user.Semester = *req.Semester
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrNicknameAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToUserDTO(user, true)
	return &d, nil
}

func (s *UserServiceImpl) Search(query *dto.UserSearchQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()

	users, total, err := s.userRepo.Search(query.Query, query.Limit(), query.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.ToUserDTO(&users[i], false))
	}

	resp := dto.NewPaginatedResponse(items, total, query.Page, query.PageSize)
	return &resp, nil
}

func (s *UserServiceImpl) findActiveUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrNotFound(repositories.ErrUserNotFound)
	}
	return user, nil
}
