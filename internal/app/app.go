package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"instalab_backend/database"
	"instalab_backend/internal/config"
	"instalab_backend/internal/email"
	"instalab_backend/internal/handlers"
	"instalab_backend/internal/logger"
	"instalab_backend/internal/middleware"
	"instalab_backend/internal/queue"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/routes"
	"instalab_backend/internal/services"
	"instalab_backend/internal/validator"
	"instalab_backend/internal/workers"
	"instalab_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	log := logger.GetLogger()
	log.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm(cfg.Database.DSN)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic(err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Error("failed to get *sql.DB from GORM", "error", err)
		panic(err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Error("database unavailable", "error", err)
		panic(err)
	}
	log.Info("database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		log.Error("migration failed", "error", err)
		panic(err)
	}
	if err := database.SeedJobCategories(gormDB); err != nil {
		log.Error("category seeding failed", "error", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		log.Error("server startup error", "error", err)
		panic(err)
	}
}

// SetupRouter wires repositories, services, handlers and routes over the
// given database handle. Integration tests call it with a transaction.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	log := logger.GetLogger()

	// Repositories.
	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	postRepo := repositories.NewPostRepository(gormDB)
	storyRepo := repositories.NewStoryRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	studentRepo := repositories.NewStudentRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	// Email delivery behind a queue. Without a broker URL, jobs are
	// dispatched inline in the request goroutine.
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.FromEmail,
			FromName: cfg.Email.FromName,
		}, email.NewTemplateManager())
	} else {
		log.Warn("SMTP is not configured, emails are logged only")
		emailProvider = &MockEmailProvider{}
	}
	dispatcher := queue.NewEmailDispatcher(emailProvider, cfg.Email.FromEmail)

	var publisher queue.Publisher
	if cfg.Queue.URL != "" {
		rabbit, err := queue.NewRabbitQueue(cfg.Queue.URL, cfg.Queue.QueueName)
		if err != nil {
			log.Error("failed to connect to RabbitMQ", "error", err)
			panic(err)
		}
		if err := rabbit.Consume(dispatcher.Handle, cfg.Queue.MaxRetries); err != nil {
			log.Error("failed to start queue consumer", "error", err)
			panic(err)
		}
		publisher = rabbit
	} else {
		log.Warn("queue URL is not configured, email jobs run inline")
		publisher = queue.NewInlineQueue(dispatcher.Handle)
	}

	// WebSocket manager doubles as the chat delivery sink.
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run()

	// Services.
	notificationService := services.NewNotificationService(notificationRepo, publisher)
	serviceContainer := &services.ServiceContainer{
		Auth:         services.NewAuthService(userRepo, publisher),
		User:         services.NewUserService(userRepo, postRepo),
		Job:          services.NewJobService(jobRepo, applicationRepo, userRepo),
		Application:  services.NewApplicationService(applicationRepo, jobRepo, userRepo, notificationService),
		Feed:         services.NewFeedService(postRepo, userRepo, notificationService),
		Story:        services.NewStoryService(storyRepo, jobRepo),
		Chat:         services.NewChatService(chatRepo, userRepo, notificationService, wsManager),
		Student:      services.NewStudentService(studentRepo, userRepo, notificationService),
		Notification: notificationService,
	}

	wsHandler := ws.NewWebSocketHandler(wsManager, serviceContainer.Chat)

	// Handlers.
	appHandlers := initializeHandlers(serviceContainer)

	// Background workers.
	workers.NewListingWorker(jobRepo).Start(ctx)
	workers.NewStoryWorker(storyRepo).Start(ctx)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	limiter := middleware.NewRateLimiter()

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, serviceContainer.Auth, limiter),
		UserHandler:         handlers.NewUserHandler(baseHandler, serviceContainer.User, serviceContainer.Feed),
		JobHandler:          handlers.NewJobHandler(baseHandler, serviceContainer.Job, serviceContainer.Application),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, serviceContainer.Application),
		FeedHandler:         handlers.NewFeedHandler(baseHandler, serviceContainer.Feed),
		StoryHandler:        handlers.NewStoryHandler(baseHandler, serviceContainer.Story),
		ChatHandler:         handlers.NewChatHandler(baseHandler, serviceContainer.Chat),
		StudentHandler:      handlers.NewStudentHandler(baseHandler, serviceContainer.Student),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, serviceContainer.Notification),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	return router
}
