// internal/services/submission_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/gradpath-backend/internal/models"
)

func TestGetSubmissionCreatesEmptyRecord(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "subcreate")
	application := createTestApplication(t, db, user, "State University")

	submission, err := service.GetSubmission(application.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, application.ID, submission.ApplicationID)
	assert.False(t, submission.ApplicationSubmitted)
	assert.Nil(t, submission.SubmittedAt)
	assert.Empty(t, submission.FollowUps)

	// A second read returns the same row instead of creating another
	again, err := service.GetSubmission(application.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.SubmissionStatus{}).
		Where("application_id = ?", application.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetSubmissionForeignApplication(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	owner := createTestUser(t, db, "subowner")
	other := createTestUser(t, db, "subother")
	application := createTestApplication(t, db, owner, "State University")

	_, err := service.GetSubmission(application.ID, other.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestUpdateSubmissionSetsSubmittedAtAndSyncsStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "subsync")
	application := createTestApplication(t, db, user, "State University")

	submitted := true
	confirmation := "CONF-2026-001"
	submission, err := service.UpdateSubmission(application.ID, user.ID, &UpdateSubmissionRequest{
		ApplicationSubmitted: &submitted,
		SubmissionMethod:     models.SubmissionMethodOnline,
		ConfirmationNumber:   &confirmation,
	})
	require.NoError(t, err)

	var reloaded models.SubmissionStatus
	require.NoError(t, db.First(&reloaded, "id = ?", submission.ID).Error)
	assert.True(t, reloaded.ApplicationSubmitted)
	require.NotNil(t, reloaded.SubmittedAt)
	assert.WithinDuration(t, time.Now(), *reloaded.SubmittedAt, time.Minute)
	assert.Equal(t, models.SubmissionMethodOnline, reloaded.SubmissionMethod)
	assert.Equal(t, confirmation, reloaded.ConfirmationNumber)

	var pkg models.ApplicationPackage
	require.NoError(t, db.First(&pkg, "id = ?", application.ID).Error)
	assert.Equal(t, models.PackageStatusSubmitted, pkg.Status)
}

func TestUpdateSubmissionKeepsExplicitSubmittedAt(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "subexplicit")
	application := createTestApplication(t, db, user, "State University")

	submitted := true
	submittedAt := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	_, err := service.UpdateSubmission(application.ID, user.ID, &UpdateSubmissionRequest{
		ApplicationSubmitted: &submitted,
		SubmittedAt:          &submittedAt,
	})
	require.NoError(t, err)

	var reloaded models.SubmissionStatus
	require.NoError(t, db.First(&reloaded, "application_id = ?", application.ID).Error)
	require.NotNil(t, reloaded.SubmittedAt)
	assert.WithinDuration(t, submittedAt, *reloaded.SubmittedAt, time.Second)
}

func TestUpdateSubmissionLeavesTerminalStatusAlone(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "subterminal")
	application := createTestApplication(t, db, user, "State University")
	require.NoError(t, db.Model(&models.ApplicationPackage{}).
		Where("id = ?", application.ID).
		Update("status", models.PackageStatusAccepted).Error)

	submitted := true
	_, err := service.UpdateSubmission(application.ID, user.ID, &UpdateSubmissionRequest{
		ApplicationSubmitted: &submitted,
	})
	require.NoError(t, err)

	var pkg models.ApplicationPackage
	require.NoError(t, db.First(&pkg, "id = ?", application.ID).Error)
	assert.Equal(t, models.PackageStatusAccepted, pkg.Status)
}

func TestUpdateSubmissionRejectsUnknownMethod(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "submethod")
	application := createTestApplication(t, db, user, "State University")

	_, err := service.UpdateSubmission(application.ID, user.ID, &UpdateSubmissionRequest{
		SubmissionMethod: "carrier_pigeon",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestFollowUpLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "followup")
	application := createTestApplication(t, db, user, "State University")

	submission, err := service.AddFollowUp(application.ID, user.ID, &AddFollowUpRequest{
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		FollowUpType: "email",
		Notes:        "Asked about decision timeline",
	})
	require.NoError(t, err)
	require.Len(t, submission.FollowUps, 1)
	entryID := submission.FollowUps[0].ID
	assert.NotEqual(t, uuid.Nil, entryID)

	_, err = service.AddFollowUp(application.ID, user.ID, &AddFollowUpRequest{
		Date:         time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		FollowUpType: "phone",
	})
	require.NoError(t, err)

	outcome := "Decision expected mid-October"
	submission, err = service.UpdateFollowUp(application.ID, entryID, user.ID, &UpdateFollowUpRequest{
		Outcome: &outcome,
	})
	require.NoError(t, err)

	var reloaded models.SubmissionStatus
	require.NoError(t, db.First(&reloaded, "application_id = ?", application.ID).Error)
	require.Len(t, reloaded.FollowUps, 2)
	assert.Equal(t, outcome, reloaded.FollowUps[0].Outcome)
	assert.Equal(t, "Asked about decision timeline", reloaded.FollowUps[0].Notes)
	assert.Equal(t, "phone", reloaded.FollowUps[1].FollowUpType)

	submission, err = service.DeleteFollowUp(application.ID, entryID, user.ID)
	require.NoError(t, err)
	require.Len(t, submission.FollowUps, 1)
	assert.Equal(t, "phone", submission.FollowUps[0].FollowUpType)
}

func TestFollowUpNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "followupmissing")
	application := createTestApplication(t, db, user, "State University")

	notes := "never recorded"
	_, err := service.UpdateFollowUp(application.ID, uuid.New(), user.ID, &UpdateFollowUpRequest{
		Notes: &notes,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "follow-up not found")

	_, err = service.DeleteFollowUp(application.ID, uuid.New(), user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "follow-up not found")
}

func TestAddFollowUpRequiresDateAndType(t *testing.T) {
	db := setupTestDB(t)
	service := NewSubmissionService(db)
	user := createTestUser(t, db, "followupinvalid")
	application := createTestApplication(t, db, user, "State University")

	_, err := service.AddFollowUp(application.ID, user.ID, &AddFollowUpRequest{
		Notes: "missing required fields",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
