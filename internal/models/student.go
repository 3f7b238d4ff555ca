package models

// StudentPost is an entry on the student social board, separate from the main
// feed.
type StudentPost struct {
	BaseModel
	AuthorID string          `gorm:"not null;index" json:"author_id"`
	Author   *User           `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Title    string          `gorm:"not null" json:"title"`
	Content  string          `gorm:"not null" json:"content"`
	PostType StudentPostType `gorm:"type:varchar(15);default:'discussion'" json:"post_type"`
	Tags     string          `json:"tags,omitempty"`

	// Set when PostType is study_group.
	StudySubject    string `json:"study_subject,omitempty"`
	MaxParticipants int    `json:"max_participants,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`
}

type StudyGroup struct {
	BaseModel
	CreatorID   string      `gorm:"not null;index" json:"creator_id"`
	Creator     *User       `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	Subject     string      `gorm:"not null" json:"subject"`
	MaxMembers  int         `gorm:"default:10" json:"max_members"`
	MeetingType MeetingType `gorm:"type:varchar(10);default:'online'" json:"meeting_type"`
	University  string      `json:"university,omitempty"`
	Semester    string      `json:"semester,omitempty"`
	IsActive    bool        `gorm:"default:true;index" json:"is_active"`

	Members []StudyGroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

type StudyGroupMember struct {
	BaseModel
	GroupID string `gorm:"not null;index;uniqueIndex:idx_group_member" json:"group_id"`
	UserID  string `gorm:"not null;uniqueIndex:idx_group_member" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// StudentConnection is a directed connection request; once accepted it counts
// for both sides. The unique index covers the directed pair, the service
// rejects the reverse duplicate.
type StudentConnection struct {
	BaseModel
	RequesterID string           `gorm:"not null;index;uniqueIndex:idx_requester_addressee" json:"requester_id"`
	Requester   *User            `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	AddresseeID string           `gorm:"not null;index;uniqueIndex:idx_requester_addressee" json:"addressee_id"`
	Addressee   *User            `gorm:"foreignKey:AddresseeID;constraint:OnDelete:CASCADE" json:"addressee,omitempty"`
	Status      ConnectionStatus `gorm:"type:varchar(10);default:'pending'" json:"status"`
}
