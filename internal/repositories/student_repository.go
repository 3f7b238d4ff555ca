package repositories

import (
	"errors"
	"time"

	"instalab_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrStudentPostNotFound = errors.New("student post not found")
	ErrStudyGroupNotFound  = errors.New("study group not found")
	ErrMembershipNotFound  = errors.New("group membership not found")
	ErrDuplicateMembership = errors.New("user is already a group member")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrDuplicateConnection = errors.New("connection already exists")
)

// StudentFilter narrows the student board. Zero values are not applied.
type StudentFilter struct {
	PostType models.StudentPostType
	Subject  string
	Search   string
	Page     int
	PageSize int
}

type StudentRepository interface {
	// Post operations
	CreatePost(post *models.StudentPost) error
	FindPostByID(id string) (*models.StudentPost, error)
	DeactivatePost(postID string) error
	FindPosts(criteria StudentFilter) ([]models.StudentPost, int64, error)

	// Study group operations
	CreateGroup(group *models.StudyGroup) error
	FindGroupByID(id string) (*models.StudyGroup, error)
	FindGroups(subject string, limit, offset int) ([]models.StudyGroup, int64, error)
	AddMember(member *models.StudyGroupMember) error
	RemoveMember(groupID, userID string) error
	CountMembers(groupID string) (int64, error)
	IsMember(groupID, userID string) (bool, error)
	FindGroupMembers(groupID string) ([]models.StudyGroupMember, error)

	// Connection operations
	CreateConnection(connection *models.StudentConnection) error
	FindConnectionByID(id string) (*models.StudentConnection, error)
	FindConnectionBetween(userA, userB string) (*models.StudentConnection, error)
	UpdateConnectionStatus(connectionID string, status models.ConnectionStatus) error
	DeleteConnection(connectionID string) error
	FindConnectionsByUser(userID string, status models.ConnectionStatus) ([]models.StudentConnection, error)
}

type StudentRepositoryImpl struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

// Post operations

func (r *StudentRepositoryImpl) CreatePost(post *models.StudentPost) error {
	return r.db.Create(post).Error
}

func (r *StudentRepositoryImpl) FindPostByID(id string) (*models.StudentPost, error) {
	var post models.StudentPost
	err := r.db.Preload("Author").First(&post, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *StudentRepositoryImpl) DeactivatePost(postID string) error {
	result := r.db.Model(&models.StudentPost{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentPostNotFound
	}
	return nil
}

func (r *StudentRepositoryImpl) FindPosts(criteria StudentFilter) ([]models.StudentPost, int64, error) {
	var posts []models.StudentPost
	query := r.db.Model(&models.StudentPost{}).Where("is_active = ?", true)

	if criteria.PostType != "" {
		query = query.Where("post_type = ?", criteria.PostType)
	}
	if criteria.Subject != "" {
		query = query.Where("study_subject ILIKE ?", "%"+criteria.Subject+"%")
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ? OR tags ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("Author").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

// Study group operations

func (r *StudentRepositoryImpl) CreateGroup(group *models.StudyGroup) error {
	return r.db.Create(group).Error
}

func (r *StudentRepositoryImpl) FindGroupByID(id string) (*models.StudyGroup, error) {
	var group models.StudyGroup
	err := r.db.Preload("Creator").First(&group, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudyGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *StudentRepositoryImpl) FindGroups(subject string, limit, offset int) ([]models.StudyGroup, int64, error) {
	var groups []models.StudyGroup
	query := r.db.Model(&models.StudyGroup{}).Where("is_active = ?", true)

	if subject != "" {
		query = query.Where("subject ILIKE ?", "%"+subject+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Creator").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&groups).Error
	return groups, total, err
}

func (r *StudentRepositoryImpl) AddMember(member *models.StudyGroupMember) error {
	err := r.db.Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMembership
	}
	return err
}

func (r *StudentRepositoryImpl) RemoveMember(groupID, userID string) error {
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.StudyGroupMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *StudentRepositoryImpl) CountMembers(groupID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.StudyGroupMember{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (r *StudentRepositoryImpl) IsMember(groupID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.StudyGroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).Count(&count).Error
	return count > 0, err
}

func (r *StudentRepositoryImpl) FindGroupMembers(groupID string) ([]models.StudyGroupMember, error) {
	var members []models.StudyGroupMember
	err := r.db.Preload("User").Where("group_id = ?", groupID).
		Order("created_at ASC").Find(&members).Error
	return members, err
}

// Connection operations

func (r *StudentRepositoryImpl) CreateConnection(connection *models.StudentConnection) error {
	err := r.db.Create(connection).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateConnection
	}
	return err
}

func (r *StudentRepositoryImpl) FindConnectionByID(id string) (*models.StudentConnection, error) {
	var connection models.StudentConnection
	err := r.db.Preload("Requester").Preload("Addressee").
		First(&connection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

func (r *StudentRepositoryImpl) FindConnectionBetween(userA, userB string) (*models.StudentConnection, error) {
	var connection models.StudentConnection
	err := r.db.Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userA, userB, userB, userA).
		First(&connection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

func (r *StudentRepositoryImpl) UpdateConnectionStatus(connectionID string, status models.ConnectionStatus) error {
	result := r.db.Model(&models.StudentConnection{}).Where("id = ?", connectionID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

func (r *StudentRepositoryImpl) DeleteConnection(connectionID string) error {
	result := r.db.Where("id = ?", connectionID).Delete(&models.StudentConnection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

func (r *StudentRepositoryImpl) FindConnectionsByUser(userID string, status models.ConnectionStatus) ([]models.StudentConnection, error) {
	var connections []models.StudentConnection
	query := r.db.Preload("Requester").Preload("Addressee").
		Where("requester_id = ? OR addressee_id = ?", userID, userID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("created_at DESC").Find(&connections).Error
	return connections, err
}
