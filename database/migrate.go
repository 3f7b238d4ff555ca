package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"instalab_backend/internal/logger"
	"instalab_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection once and reuses it afterwards.
func ConnectGorm(dsn string) (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.JobCategory{},
		&models.JobListing{},
		&models.JobApplication{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Story{},
		&models.StoryView{},
		&models.Conversation{},
		&models.ChatMessage{},
		&models.StudentPost{},
		&models.StudyGroup{},
		&models.StudyGroupMember{},
		&models.StudentConnection{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.GetLogger().Info("database migration completed")
	return nil
}

// SeedJobCategories inserts the default categories when they are missing.
func SeedJobCategories(db *gorm.DB) error {
	categories := []models.JobCategory{
		{Name: "Engineering", Slug: "engineering"},
		{Name: "Design", Slug: "design"},
		{Name: "Marketing", Slug: "marketing"},
		{Name: "Sales", Slug: "sales"},
		{Name: "Data & Analytics", Slug: "data-analytics"},
		{Name: "Operations", Slug: "operations"},
		{Name: "Internships", Slug: "internships"},
	}

	for _, category := range categories {
		var count int64
		if err := db.Model(&models.JobCategory{}).Where("slug = ?", category.Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category %s: %w", category.Slug, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Slug, err)
		}
	}
	return nil
}
