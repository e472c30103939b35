// internal/services/submission_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type SubmissionService struct {
	db *gorm.DB
}

type UpdateSubmissionRequest struct {
	ApplicationSubmitted *bool                   `json:"application_submitted,omitempty"`
	SubmittedAt          *time.Time              `json:"submitted_at,omitempty"`
	SubmissionMethod     models.SubmissionMethod `json:"submission_method,omitempty" validate:"omitempty,oneof=online email mail in_person"`
	ConfirmationNumber   *string                 `json:"confirmation_number,omitempty"`
	ConfirmationReceived *bool                   `json:"confirmation_received,omitempty"`
	FollowUpRequired     *bool                   `json:"follow_up_required,omitempty"`
}

type AddFollowUpRequest struct {
	Date           time.Time  `json:"date" validate:"required"`
	FollowUpType   string     `json:"follow_up_type" validate:"required"`
	Notes          string     `json:"notes,omitempty"`
	Outcome        string     `json:"outcome,omitempty"`
	NextAction     string     `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
}

type UpdateFollowUpRequest struct {
	Date           *time.Time `json:"date,omitempty"`
	FollowUpType   string     `json:"follow_up_type,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	Outcome        *string    `json:"outcome,omitempty"`
	NextAction     *string    `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// GetSubmission returns the package's submission record, creating an empty
// one on first access so callers always have a row to update.
func (s *SubmissionService) GetSubmission(applicationID, userID uuid.UUID) (*models.SubmissionStatus, error) {
	if _, err := findOwnedApplication(s.db, applicationID, userID); err != nil {
		return nil, err
	}

	var submission models.SubmissionStatus
	err := s.db.Where("application_id = ?", applicationID).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		submission = models.SubmissionStatus{
			ApplicationID: applicationID,
			FollowUps:     models.FollowUpList{},
		}
		if err := s.db.Create(&submission).Error; err != nil {
			return nil, fmt.Errorf("failed to create submission status: %w", err)
		}
		return &submission, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &submission, nil
}

func (s *SubmissionService) UpdateSubmission(applicationID, userID uuid.UUID, req *UpdateSubmissionRequest) (*models.SubmissionStatus, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	submission, err := s.GetSubmission(applicationID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.ApplicationSubmitted != nil {
		updates["application_submitted"] = *req.ApplicationSubmitted
		if *req.ApplicationSubmitted && req.SubmittedAt == nil && submission.SubmittedAt == nil {
			updates["submitted_at"] = time.Now()
		}
	}
	if req.SubmittedAt != nil {
		updates["submitted_at"] = *req.SubmittedAt
	}
	if req.SubmissionMethod != "" {
		updates["submission_method"] = req.SubmissionMethod
	}
	if req.ConfirmationNumber != nil {
		updates["confirmation_number"] = *req.ConfirmationNumber
	}
	if req.ConfirmationReceived != nil {
		updates["confirmation_received"] = *req.ConfirmationReceived
	}
	if req.FollowUpRequired != nil {
		updates["follow_up_required"] = *req.FollowUpRequired
	}

	if len(updates) > 0 {
		if err := s.db.Model(submission).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update submission status: %w", err)
		}
	}

	// Marking a package submitted is reflected on the package status too
	if req.ApplicationSubmitted != nil && *req.ApplicationSubmitted {
		if err := s.db.Model(&models.ApplicationPackage{}).
			Where("id = ? AND status IN ?", applicationID,
				[]models.PackageStatus{models.PackageStatusDraft, models.PackageStatusInProgress}).
			Update("status", models.PackageStatusSubmitted).Error; err != nil {
			return nil, fmt.Errorf("failed to update application status: %w", err)
		}
	}

	return submission, nil
}

func (s *SubmissionService) AddFollowUp(applicationID, userID uuid.UUID, req *AddFollowUpRequest) (*models.SubmissionStatus, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	submission, err := s.GetSubmission(applicationID, userID)
	if err != nil {
		return nil, err
	}

	entry := models.FollowUpEntry{
		ID:             uuid.New(),
		Date:           req.Date,
		FollowUpType:   req.FollowUpType,
		Notes:          req.Notes,
		Outcome:        req.Outcome,
		NextAction:     req.NextAction,
		NextActionDate: req.NextActionDate,
	}

	submission.FollowUps = append(submission.FollowUps, entry)
	if err := s.db.Model(submission).Update("follow_ups", submission.FollowUps).Error; err != nil {
		return nil, fmt.Errorf("failed to add follow-up: %w", err)
	}

	return submission, nil
}

func (s *SubmissionService) UpdateFollowUp(applicationID, followUpID, userID uuid.UUID, req *UpdateFollowUpRequest) (*models.SubmissionStatus, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	submission, err := s.GetSubmission(applicationID, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range submission.FollowUps {
		if submission.FollowUps[i].ID != followUpID {
			continue
		}
		found = true
		if req.Date != nil {
			submission.FollowUps[i].Date = *req.Date
		}
		if req.FollowUpType != "" {
			submission.FollowUps[i].FollowUpType = req.FollowUpType
		}
		if req.Notes != nil {
			submission.FollowUps[i].Notes = *req.Notes
		}
		if req.Outcome != nil {
			submission.FollowUps[i].Outcome = *req.Outcome
		}
		if req.NextAction != nil {
			submission.FollowUps[i].NextAction = *req.NextAction
		}
		if req.NextActionDate != nil {
			submission.FollowUps[i].NextActionDate = req.NextActionDate
		}
		break
	}
	if !found {
		return nil, errors.New("follow-up not found")
	}

	if err := s.db.Model(submission).Update("follow_ups", submission.FollowUps).Error; err != nil {
		return nil, fmt.Errorf("failed to update follow-up: %w", err)
	}

	return submission, nil
}

func (s *SubmissionService) DeleteFollowUp(applicationID, followUpID, userID uuid.UUID) (*models.SubmissionStatus, error) {
	submission, err := s.GetSubmission(applicationID, userID)
	if err != nil {
		return nil, err
	}

	kept := make(models.FollowUpList, 0, len(submission.FollowUps))
	found := false
	for _, entry := range submission.FollowUps {
		if entry.ID == followUpID {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return nil, errors.New("follow-up not found")
	}

	submission.FollowUps = kept
	if err := s.db.Model(submission).Update("follow_ups", submission.FollowUps).Error; err != nil {
		return nil, fmt.Errorf("failed to delete follow-up: %w", err)
	}

	return submission, nil
}
