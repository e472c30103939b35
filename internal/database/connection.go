// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gradpath/gradpath-backend/internal/config"
	"github.com/gradpath/gradpath-backend/internal/models"
)

var DB *gorm.DB

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

// Initialize opens the Postgres connection, configures the pool, and
// verifies connectivity. The returned handle is also kept in the package
// level DB variable.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established")
	DB = db
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.ApplicationPackage{},
		&models.Requirement{},
		&models.Document{},
		&models.RequirementsTemplate{},
		&models.Interview{},
		&models.SubmissionStatus{},
		&models.ActivityLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",

		// Application package indexes
		"CREATE INDEX IF NOT EXISTS idx_applications_user_status ON application_packages(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_applications_type ON application_packages(application_type)",
		"CREATE INDEX IF NOT EXISTS idx_applications_deadline ON application_packages(application_deadline)",
		"CREATE INDEX IF NOT EXISTS idx_applications_created_at ON application_packages(created_at DESC)",

		// Requirement indexes
		"CREATE INDEX IF NOT EXISTS idx_requirements_application ON requirements(application_id)",
		"CREATE INDEX IF NOT EXISTS idx_requirements_app_status ON requirements(application_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_requirements_app_category ON requirements(application_id, category)",
		"CREATE INDEX IF NOT EXISTS idx_requirements_linked_document ON requirements(linked_document_id)",
		"CREATE INDEX IF NOT EXISTS idx_requirements_display_order ON requirements(application_id, display_order)",

		// Document indexes
		"CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_documents_type_status ON documents(document_type, status)",
		"CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC)",

		// Template indexes
		"CREATE INDEX IF NOT EXISTS idx_templates_category ON requirements_templates(category)",
		"CREATE INDEX IF NOT EXISTS idx_templates_system ON requirements_templates(is_system_template)",

		// Interview indexes
		"CREATE INDEX IF NOT EXISTS idx_interviews_application ON interviews(application_id)",
		"CREATE INDEX IF NOT EXISTS idx_interviews_scheduled ON interviews(scheduled_date)",

		// Submission indexes
		"CREATE INDEX IF NOT EXISTS idx_submission_application ON submission_statuses(application_id)",

		// Activity log indexes
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_user_action ON activity_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_resource ON activity_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	for _, template := range systemTemplates() {
		var count int64
		db.Model(&models.RequirementsTemplate{}).
			Where("name = ? AND is_system_template = ?", template.Name, true).
			Count(&count)

		if count == 0 {
			if err := db.Create(&template).Error; err != nil {
				log.Printf("Warning: Failed to create system template %s: %v", template.Name, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
