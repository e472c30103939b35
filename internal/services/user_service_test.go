// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/gradpath-backend/internal/models"
)

func TestUpdateProfileUsernameUniqueness(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "profileuser")
	createTestUser(t, db, "takenname")

	_, err := service.UpdateProfile(user.ID, &UpdateUserProfileRequest{
		Username: "takenname",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")

	updated, err := service.UpdateProfile(user.ID, &UpdateUserProfileRequest{
		Username: "freshname",
	})
	require.NoError(t, err)
	assert.Equal(t, "freshname", updated.Username)

	// Re-submitting the current username is a no-op, not a conflict
	updated, err = service.UpdateProfile(user.ID, &UpdateUserProfileRequest{
		Username: "freshname",
	})
	require.NoError(t, err)
	assert.Equal(t, "freshname", updated.Username)
}

func TestSettingsMergeKeepsUnrelatedKeys(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "settingsuser")

	settings, err := service.GetSettings(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, settings)
	assert.Empty(t, settings)

	_, err = service.UpdateSettings(user.ID, map[string]interface{}{
		"theme":    "dark",
		"language": "en",
	})
	require.NoError(t, err)

	settings, err = service.UpdateSettings(user.ID, map[string]interface{}{
		"theme": "light",
	})
	require.NoError(t, err)
	assert.Equal(t, "light", settings["theme"])
	assert.Equal(t, "en", settings["language"])
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "passworduser")

	err := service.ChangePassword(user.ID, &ChangePasswordRequest{
		CurrentPassword: "WrongPass123!",
		NewPassword:     "FreshPass456!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid password")

	require.NoError(t, service.ChangePassword(user.ID, &ChangePasswordRequest{
		CurrentPassword: "TestPass123!",
		NewPassword:     "FreshPass456!",
	}))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Error(t, reloaded.CheckPassword("TestPass123!"))
	assert.NoError(t, reloaded.CheckPassword("FreshPass456!"))
}

func TestChangePasswordRejectsWeakNewPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "weaknewpass")

	err := service.ChangePassword(user.ID, &ChangePasswordRequest{
		CurrentPassword: "TestPass123!",
		NewPassword:     "short",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDeleteAccountRemovesOwnedData(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	requirements := NewRequirementService(db)
	interviews := NewInterviewService(db, nil)
	submissions := NewSubmissionService(db)
	templates := NewTemplateService(db)

	user := createTestUser(t, db, "deleteuser")
	keeper := createTestUser(t, db, "keepuser")
	application := createTestApplication(t, db, user, "State University")
	createTestDocument(t, db, user, "Transcript")
	keeperApp := createTestApplication(t, db, keeper, "Other College")

	_, err := requirements.CreateRequirement(application.ID, user.ID, &CreateRequirementRequest{
		Name:            "Official transcript",
		Category:        models.RequirementCategoryAcademic,
		RequirementType: models.RequirementTypeDocument,
	})
	require.NoError(t, err)
	_, err = interviews.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypeVideo,
	})
	require.NoError(t, err)
	_, err = submissions.GetSubmission(application.ID, user.ID)
	require.NoError(t, err)
	_, err = templates.CreateTemplate(user.ID, &CreateTemplateRequest{
		Name:     "My checklist",
		Category: models.TemplateCategoryCustom,
		Blueprints: []models.RequirementBlueprint{
			{Name: "Transcript", Category: models.RequirementCategoryAcademic, RequirementType: models.RequirementTypeDocument, IsRequired: true},
		},
	})
	require.NoError(t, err)

	err = users.DeleteAccount(user.ID, "WrongPass123!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid password")

	require.NoError(t, users.DeleteAccount(user.ID, "TestPass123!"))

	for _, check := range []struct {
		name  string
		model interface{}
		where string
		arg   interface{}
	}{
		{"user", &models.User{}, "id = ?", user.ID},
		{"applications", &models.ApplicationPackage{}, "user_id = ?", user.ID},
		{"requirements", &models.Requirement{}, "application_id = ?", application.ID},
		{"interviews", &models.Interview{}, "application_id = ?", application.ID},
		{"submissions", &models.SubmissionStatus{}, "application_id = ?", application.ID},
		{"documents", &models.Document{}, "user_id = ?", user.ID},
		{"templates", &models.RequirementsTemplate{}, "created_by = ?", user.ID},
	} {
		var count int64
		require.NoError(t, db.Model(check.model).Where(check.where, check.arg).Count(&count).Error)
		assert.Zero(t, count, "expected no %s left", check.name)
	}

	// The other user's data is untouched
	var keeperCount int64
	require.NoError(t, db.Model(&models.ApplicationPackage{}).
		Where("id = ?", keeperApp.ID).Count(&keeperCount).Error)
	assert.Equal(t, int64(1), keeperCount)
}
