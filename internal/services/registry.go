package services

// ServiceContainer wires every service over a shared repository set.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Job          JobService
	Application  ApplicationService
	Feed         FeedService
	Story        StoryService
	Chat         ChatService
	Student      StudentService
	Notification NotificationService
}
