// internal/services/interview_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/gradpath-backend/internal/models"
)

func TestCreateInterviewDefaultsToScheduled(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	user := createTestUser(t, db, "interview")
	application := createTestApplication(t, db, user, "State University")

	scheduled := time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC)
	interview, err := service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType:   models.InterviewTypeVideo,
		ScheduledDate:   &scheduled,
		DurationMinutes: 45,
		Interviewer:     "Dr. Alvarez",
		MeetingURL:      "https://meet.example.com/abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusScheduled, interview.Status)
	require.NotNil(t, interview.ScheduledDate)
	assert.WithinDuration(t, scheduled, *interview.ScheduledDate, time.Second)
}

func TestCreateInterviewRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	user := createTestUser(t, db, "interviewtype")
	application := createTestApplication(t, db, user, "State University")

	_, err := service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: "telepathy",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUpdateInterviewMoveMarksRescheduled(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	user := createTestUser(t, db, "interviewmove")
	application := createTestApplication(t, db, user, "State University")

	original := time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC)
	interview, err := service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypePhone,
		ScheduledDate: &original,
	})
	require.NoError(t, err)

	moved := original.AddDate(0, 0, 7)
	_, err = service.UpdateInterview(interview.ID, user.ID, &UpdateInterviewRequest{
		ScheduledDate: &moved,
	})
	require.NoError(t, err)

	var reloaded models.Interview
	require.NoError(t, db.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, models.InterviewStatusRescheduled, reloaded.Status)
	require.NotNil(t, reloaded.ScheduledDate)
	assert.WithinDuration(t, moved, *reloaded.ScheduledDate, time.Second)
}

func TestUpdateInterviewFirstDateDoesNotReschedule(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	user := createTestUser(t, db, "interviewfirst")
	application := createTestApplication(t, db, user, "State University")

	interview, err := service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypeInPerson,
		Location:      "Admissions office, room 204",
	})
	require.NoError(t, err)

	scheduled := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
	_, err = service.UpdateInterview(interview.ID, user.ID, &UpdateInterviewRequest{
		ScheduledDate: &scheduled,
	})
	require.NoError(t, err)

	var reloaded models.Interview
	require.NoError(t, db.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, models.InterviewStatusScheduled, reloaded.Status)
}

func TestUpdateInterviewExplicitStatusWins(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	user := createTestUser(t, db, "interviewstatus")
	application := createTestApplication(t, db, user, "State University")

	original := time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC)
	interview, err := service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypeVideo,
		ScheduledDate: &original,
	})
	require.NoError(t, err)

	moved := original.Add(2 * time.Hour)
	_, err = service.UpdateInterview(interview.ID, user.ID, &UpdateInterviewRequest{
		ScheduledDate: &moved,
		Status:        models.InterviewStatusCompleted,
	})
	require.NoError(t, err)

	var reloaded models.Interview
	require.NoError(t, db.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, models.InterviewStatusCompleted, reloaded.Status)
}

func TestInterviewOwnership(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	owner := createTestUser(t, db, "interviewowner")
	other := createTestUser(t, db, "interviewother")
	application := createTestApplication(t, db, owner, "State University")

	interview, err := service.CreateInterview(application.ID, owner.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypeVideo,
	})
	require.NoError(t, err)

	_, err = service.CreateInterview(application.ID, other.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypeVideo,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	err = service.DeleteInterview(interview.ID, other.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	require.NoError(t, service.DeleteInterview(interview.ID, owner.ID))

	var count int64
	require.NoError(t, db.Model(&models.Interview{}).
		Where("application_id = ?", application.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListInterviewsSortedBySchedule(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterviewService(db, nil)
	user := createTestUser(t, db, "interviewlist")
	application := createTestApplication(t, db, user, "State University")

	late := time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC)
	early := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	_, err := service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypeVideo,
		ScheduledDate: &late,
	})
	require.NoError(t, err)
	_, err = service.CreateInterview(application.ID, user.ID, &CreateInterviewRequest{
		InterviewType: models.InterviewTypePhone,
		ScheduledDate: &early,
	})
	require.NoError(t, err)

	params := testPagination()
	params.Sort = "scheduled_date"
	params.Order = "asc"
	interviews, total, err := service.ListInterviews(application.ID, user.ID, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, interviews, 2)
	assert.Equal(t, models.InterviewTypePhone, interviews[0].InterviewType)
	assert.Equal(t, models.InterviewTypeVideo, interviews[1].InterviewType)
}
