// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

// testPagination mirrors the defaults GetPaginationParams applies to an
// unqualified request.
func testPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

// setupTestDB opens a private in-memory database and migrates the full
// schema. Each test gets its own database, named after the test so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ApplicationPackage{},
		&models.Requirement{},
		&models.Document{},
		&models.RequirementsTemplate{},
		&models.Interview{},
		&models.SubmissionStatus{},
		&models.ActivityLog{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestApplication(t *testing.T, db *gorm.DB, user *models.User, name string) *models.ApplicationPackage {
	t.Helper()

	application := &models.ApplicationPackage{
		UserID:               user.ID,
		Name:                 name,
		ApplicationType:      models.ApplicationTypeSchool,
		Status:               models.PackageStatusDraft,
		Priority:             models.PackagePriorityMedium,
		RequirementsProgress: models.AggregateProgress(nil).Snapshot(),
	}
	require.NoError(t, db.Create(application).Error)
	return application
}

func createTestDocument(t *testing.T, db *gorm.DB, user *models.User, title string) *models.Document {
	t.Helper()

	document := &models.Document{
		UserID:       user.ID,
		Title:        title,
		DocumentType: "transcript",
		Status:       models.DocumentStatusDraft,
		Content:      "authored content",
	}
	require.NoError(t, db.Create(document).Error)
	return document
}
