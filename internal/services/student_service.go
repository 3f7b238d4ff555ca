package services

import (
	"context"

	"instalab_backend/internal/models"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

// StudentService backs the student-only social area: the board, study groups
// and connections. Every operation requires a student account.
type StudentService interface {
	CreatePost(userID string, req *dto.CreateStudentPostRequest) (*dto.StudentPostDTO, error)
	Board(query *dto.StudentBoardQuery) (*dto.PaginatedResponse, error)
	DeletePost(userID, postID string) error

	CreateGroup(userID string, req *dto.CreateStudyGroupRequest) (*dto.StudyGroupDTO, error)
	Groups(userID string, subject string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error)
	GetGroup(userID, groupID string) (*dto.StudyGroupDTO, error)
	JoinGroup(userID, groupID string) (*dto.StudyGroupDTO, error)
	LeaveGroup(userID, groupID string) error

	Connect(ctx context.Context, userID string, req *dto.ConnectionRequest) (*dto.ConnectionDTO, error)
	AcceptConnection(userID, connectionID string) (*dto.ConnectionDTO, error)
	DeclineConnection(userID, connectionID string) error
	Connections(userID string, status models.ConnectionStatus) ([]dto.ConnectionDTO, error)
}

type StudentServiceImpl struct {
	studentRepo   repositories.StudentRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewStudentService(
	studentRepo repositories.StudentRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) StudentService {
	return &StudentServiceImpl{
		studentRepo:   studentRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *StudentServiceImpl) CreatePost(userID string, req *dto.CreateStudentPostRequest) (*dto.StudentPostDTO, error) {
	author, err := s.requireStudent(userID)
	if err != nil {
		return nil, err
	}

	post := &models.StudentPost{
		AuthorID:        userID,
		Title:           req.Title,
		Content:         req.Content,
		PostType:        models.StudentPostTypeDiscussion,
		Tags:            req.Tags,
		StudySubject:    req.StudySubject,
		MaxParticipants: req.MaxParticipants,
		IsActive:        true,
	}
	if req.PostType != "" {
		post.PostType = models.StudentPostType(req.PostType)
	}

	if err := s.studentRepo.CreatePost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	post.Author = author

	d := dto.ToStudentPostDTO(post)
	return &d, nil
}

func (s *StudentServiceImpl) Board(query *dto.StudentBoardQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()

	posts, total, err := s.studentRepo.FindPosts(repositories.StudentFilter{
		PostType: query.PostType,
		Subject:  query.Subject,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.StudentPostDTO, 0, len(posts))
	for i := range posts {
		items = append(items, dto.ToStudentPostDTO(&posts[i]))
	}

	resp := dto.NewPaginatedResponse(items, total, query.Page, query.PageSize)
	return &resp, nil
}

func (s *StudentServiceImpl) DeletePost(userID, postID string) error {
	post, err := s.studentRepo.FindPostByID(postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudentPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if post.AuthorID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.studentRepo.DeactivatePost(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// CreateGroup makes the creator the first member.
func (s *StudentServiceImpl) CreateGroup(userID string, req *dto.CreateStudyGroupRequest) (*dto.StudyGroupDTO, error) {
	creator, err := s.requireStudent(userID)
	if err != nil {
		return nil, err
	}

	group := &models.StudyGroup{
		CreatorID:   userID,
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		MaxMembers:  req.MaxMembers,
		MeetingType: models.MeetingTypeOnline,
		University:  req.University,
		Semester:    req.Semester,
		IsActive:    true,
	}
	if group.MaxMembers <= 0 {
		group.MaxMembers = 10
	}
	if req.MeetingType != "" {
		group.MeetingType = models.MeetingType(req.MeetingType)
	}

	if err := s.studentRepo.CreateGroup(group); err != nil {
		return nil, apperrors.InternalError(err)
	}
	group.Creator = creator

	if err := s.studentRepo.AddMember(&models.StudyGroupMember{GroupID: group.ID, UserID: userID}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToStudyGroupDTO(group, 1, true)
	return &d, nil
}

func (s *StudentServiceImpl) Groups(userID string, subject string, pq *dto.PaginationQuery) (*dto.PaginatedResponse, error) {
	pq.Normalize()

	groups, total, err := s.studentRepo.FindGroups(subject, pq.Limit(), pq.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.StudyGroupDTO, 0, len(groups))
	for i := range groups {
		d, err := s.toGroupDTO(&groups[i], userID)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}

	resp := dto.NewPaginatedResponse(items, total, pq.Page, pq.PageSize)
	return &resp, nil
}

func (s *StudentServiceImpl) GetGroup(userID, groupID string) (*dto.StudyGroupDTO, error) {
	group, err := s.findGroup(groupID)
	if err != nil {
		return nil, err
	}
	return s.toGroupDTO(group, userID)
}

func (s *StudentServiceImpl) JoinGroup(userID, groupID string) (*dto.StudyGroupDTO, error) {
	if _, err := s.requireStudent(userID); err != nil {
		return nil, err
	}

	group, err := s.findGroup(groupID)
	if err != nil {
		return nil, err
	}

	count, err := s.studentRepo.CountMembers(groupID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count >= int64(group.MaxMembers) {
		return nil, apperrors.ErrGroupFull
	}

	if err := s.studentRepo.AddMember(&models.StudyGroupMember{GroupID: groupID, UserID: userID}); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateMembership) {
			return nil, apperrors.ErrAlreadyMember
		}
		return nil, apperrors.InternalError(err)
	}

	return s.toGroupDTO(group, userID)
}

func (s *StudentServiceImpl) LeaveGroup(userID, groupID string) error {
	if _, err := s.findGroup(groupID); err != nil {
		return err
	}

	if err := s.studentRepo.RemoveMember(groupID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrMembershipNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *StudentServiceImpl) Connect(ctx context.Context, userID string, req *dto.ConnectionRequest) (*dto.ConnectionDTO, error) {
	requester, err := s.requireStudent(userID)
	if err != nil {
		return nil, err
	}
	if userID == req.AddresseeID {
		return nil, apperrors.ErrCannotConnectSelf
	}
	if _, err := s.requireStudent(req.AddresseeID); err != nil {
		return nil, err
	}

	// The reverse direction counts as a duplicate too.
	if _, err := s.studentRepo.FindConnectionBetween(userID, req.AddresseeID); err == nil {
		return nil, apperrors.ErrConnectionAlreadyExists
	}

	connection := &models.StudentConnection{
		RequesterID: userID,
		AddresseeID: req.AddresseeID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.studentRepo.CreateConnection(connection); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateConnection) {
			return nil, apperrors.ErrConnectionAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifications.Notify(ctx, &models.Notification{
		UserID:  req.AddresseeID,
		Type:    models.NotificationTypeConnection,
		Title:   "Connection request",
		Message: requester.Nickname + " wants to connect",
		Data:    NotificationData(map[string]interface{}{"connection_id": connection.ID}),
	}, nil)

	d := dto.ToConnectionDTO(connection)
	return &d, nil
}

func (s *StudentServiceImpl) AcceptConnection(userID, connectionID string) (*dto.ConnectionDTO, error) {
	connection, err := s.findConnection(connectionID)
	if err != nil {
		return nil, err
	}
	if connection.AddresseeID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if connection.Status != models.ConnectionStatusPending {
		return nil, apperrors.NewBadRequestError("connection is not pending")
	}

	if err := s.studentRepo.UpdateConnectionStatus(connectionID, models.ConnectionStatusAccepted); err != nil {
		return nil, apperrors.InternalError(err)
	}
	connection.Status = models.ConnectionStatusAccepted

	d := dto.ToConnectionDTO(connection)
	return &d, nil
}

// DeclineConnection removes the request; either side may remove an accepted
// connection the same way.
func (s *StudentServiceImpl) DeclineConnection(userID, connectionID string) error {
	connection, err := s.findConnection(connectionID)
	if err != nil {
		return err
	}
	if connection.RequesterID != userID && connection.AddresseeID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.studentRepo.DeleteConnection(connectionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *StudentServiceImpl) Connections(userID string, status models.ConnectionStatus) ([]dto.ConnectionDTO, error) {
	connections, err := s.studentRepo.FindConnectionsByUser(userID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ConnectionDTO, 0, len(connections))
	for i := range connections {
		items = append(items, dto.ToConnectionDTO(&connections[i]))
	}
	return items, nil
}

func (s *StudentServiceImpl) requireStudent(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsStudent() {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return user, nil
}

func (s *StudentServiceImpl) findGroup(groupID string) (*models.StudyGroup, error) {
	group, err := s.studentRepo.FindGroupByID(groupID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudyGroupNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return group, nil
}

func (s *StudentServiceImpl) findConnection(connectionID string) (*models.StudentConnection, error) {
	connection, err := s.studentRepo.FindConnectionByID(connectionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConnectionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return connection, nil
}

func (s *StudentServiceImpl) toGroupDTO(group *models.StudyGroup, userID string) (*dto.StudyGroupDTO, error) {
	count, err := s.studentRepo.CountMembers(group.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	isMember := false
	if userID != "" {
		isMember, err = s.studentRepo.IsMember(group.ID, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	d := dto.ToStudyGroupDTO(group, count, isMember)
	return &d, nil
}
