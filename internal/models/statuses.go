package models

type UserRole string
type UserStatus string
type ListingStatus string
type ListingPriority string
type ApplicationStatus string
type PostType string
type StoryType string
type StudentPostType string
type MeetingType string
type ConnectionStatus string

const (
	UserRoleStudent UserRole = "student"
	UserRoleCompany UserRole = "company"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	ListingStatusActive ListingStatus = "active"
	ListingStatusPaused ListingStatus = "paused"
	ListingStatusClosed ListingStatus = "closed"

	ListingPriorityNormal   ListingPriority = "normal"
	ListingPriorityUrgent   ListingPriority = "urgent"
	ListingPriorityFeatured ListingPriority = "featured"

	ApplicationStatusApplied   ApplicationStatus = "applied"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	PostTypeText    PostType = "text"
	PostTypePhoto   PostType = "photo"
	PostTypeProject PostType = "project"

	StoryTypeGeneral     StoryType = "general"
	StoryTypeJob         StoryType = "job"
	StoryTypeAchievement StoryType = "achievement"
	StoryTypeEvent       StoryType = "event"
	StoryTypeCulture     StoryType = "culture"

	StudentPostTypeDiscussion  StudentPostType = "discussion"
	StudentPostTypeHelp        StudentPostType = "help"
	StudentPostTypeAchievement StudentPostType = "achievement"
	StudentPostTypeStudyGroup  StudentPostType = "study_group"
	StudentPostTypeNetworking  StudentPostType = "networking"

	MeetingTypeOnline     MeetingType = "online"
	MeetingTypePresential MeetingType = "presential"
	MeetingTypeHybrid     MeetingType = "hybrid"

	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
)

func IsValidUserRole(s UserRole) bool {
	return s == UserRoleStudent || s == UserRoleCompany
}

func IsValidListingStatus(s ListingStatus) bool {
	switch s {
	case ListingStatusActive, ListingStatusPaused, ListingStatusClosed:
		return true
	}
	return false
}

func IsValidStoryType(s StoryType) bool {
	switch s {
	case StoryTypeGeneral, StoryTypeJob, StoryTypeAchievement, StoryTypeEvent, StoryTypeCulture:
		return true
	}
	return false
}

func IsValidStudentPostType(s StudentPostType) bool {
	switch s {
	case StudentPostTypeDiscussion, StudentPostTypeHelp, StudentPostTypeAchievement,
		StudentPostTypeStudyGroup, StudentPostTypeNetworking:
		return true
	}
	return false
}

func IsValidMeetingType(s MeetingType) bool {
	switch s {
	case MeetingTypeOnline, MeetingTypePresential, MeetingTypeHybrid:
		return true
	}
	return false
}

// IsValidApplicationStatus reports whether s is a declared application status.
func IsValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusReviewing, ApplicationStatusInterview,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// IsTerminalApplicationStatus reports whether s admits no further transitions.
func IsTerminalApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// applicationTransitions is the forward-only state machine for application
// statuses. Withdrawn is reachable only through the applicant withdraw path.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:   {ApplicationStatusReviewing, ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusReviewing: {ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusInterview: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

// CanTransitionApplication reports whether a company may move an application
// from one status to another.
func CanTransitionApplication(from, to ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
