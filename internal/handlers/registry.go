package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	FeedHandler         *FeedHandler
	StoryHandler        *StoryHandler
	ChatHandler         *ChatHandler
	StudentHandler      *StudentHandler
	NotificationHandler *NotificationHandler
}
