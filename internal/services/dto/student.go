package dto

import (
	"time"

	"instalab_backend/internal/models"
)

type CreateStudentPostRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=200"`
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	PostType string `json:"post_type,omitempty" binding:"omitempty,is-student-post-type"`
	Tags     string `json:"tags,omitempty"`

	StudySubject    string `json:"study_subject,omitempty"`
	MaxParticipants int    `json:"max_participants,omitempty" binding:"omitempty,min=2"`
}

type StudentBoardQuery struct {
	PaginationQuery
	PostType models.StudentPostType `form:"type" binding:"omitempty,is-student-post-type"`
	Subject  string                 `form:"subject"`
	Search   string                 `form:"q"`
}

type StudentPostDTO struct {
	ID              string                 `json:"id"`
	Author          UserDTO                `json:"author"`
	Title           string                 `json:"title"`
	Content         string                 `json:"content"`
	PostType        models.StudentPostType `json:"post_type"`
	Tags            string                 `json:"tags,omitempty"`
	StudySubject    string                 `json:"study_subject,omitempty"`
	MaxParticipants int                    `json:"max_participants,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

func ToStudentPostDTO(post *models.StudentPost) StudentPostDTO {
	d := StudentPostDTO{
		ID:              post.ID,
		Title:           post.Title,
		Content:         post.Content,
		PostType:        post.PostType,
		Tags:            post.Tags,
		StudySubject:    post.StudySubject,
		MaxParticipants: post.MaxParticipants,
		CreatedAt:       post.CreatedAt,
	}
	if post.Author != nil {
		d.Author = ToUserDTO(post.Author, false)
	}
	return d
}

type CreateStudyGroupRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Subject     string `json:"subject" binding:"required,min=2,max=100"`
	MaxMembers  int    `json:"max_members,omitempty" binding:"omitempty,min=2,max=100"`
	MeetingType string `json:"meeting_type,omitempty" binding:"omitempty,is-meeting-type"`
	University  string `json:"university,omitempty"`
	Semester    string `json:"semester,omitempty"`
}

type StudyGroupDTO struct {
	ID          string             `json:"id"`
	Creator     UserDTO            `json:"creator"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Subject     string             `json:"subject"`
	MaxMembers  int                `json:"max_members"`
	MemberCount int64              `json:"member_count"`
	MeetingType models.MeetingType `json:"meeting_type"`
	University  string             `json:"university,omitempty"`
	Semester    string             `json:"semester,omitempty"`
	IsMember    bool               `json:"is_member"`
	CreatedAt   time.Time          `json:"created_at"`
}

func ToStudyGroupDTO(group *models.StudyGroup, memberCount int64, isMember bool) StudyGroupDTO {
	d := StudyGroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Subject:     group.Subject,
		MaxMembers:  group.MaxMembers,
		MemberCount: memberCount,
		MeetingType: group.MeetingType,
		University:  group.University,
		Semester:    group.Semester,
		IsMember:    isMember,
		CreatedAt:   group.CreatedAt,
	}
	if group.Creator != nil {
		d.Creator = ToUserDTO(group.Creator, false)
	}
	return d
}

type ConnectionRequest struct {
	AddresseeID string `json:"addressee_id" binding:"required,uuid"`
}

type ConnectionDTO struct {
	ID        string                  `json:"id"`
	Requester UserDTO                 `json:"requester"`
	Addressee UserDTO                 `json:"addressee"`
	Status    models.ConnectionStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

func ToConnectionDTO(c *models.StudentConnection) ConnectionDTO {
	d := ConnectionDTO{
		ID:        c.ID,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
	if c.Requester != nil {
		d.Requester = ToUserDTO(c.Requester, false)
	}
	if c.Addressee != nil {
		d.Addressee = ToUserDTO(c.Addressee, false)
	}
	return d
}
