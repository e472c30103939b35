// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateUserProfileRequest struct {
	Username string                 `json:"username,omitempty" validate:"omitempty,username"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Find user
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// Check username uniqueness if updating
	if req.Username != "" && req.Username != user.Username {
		var existingUser models.User
		if err := s.db.Where("username = ? AND id != ?", req.Username, userID).First(&existingUser).Error; err == nil {
			return nil, errors.New("username already taken")
		}
	}

	// Update fields
	if req.Username != "" {
		user.Username = req.Username
	}

	if req.Settings != nil {
		if user.Settings == nil {
			user.Settings = make(models.JSONB)
		}
		// Merge with existing settings
		for key, value := range req.Settings {
			user.Settings[key] = value
		}
	}

	// Save changes
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

// GetSettings returns the stored per-user settings object, never nil.
func (s *UserService) GetSettings(userID uuid.UUID) (models.JSONB, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Settings == nil {
		return make(models.JSONB), nil
	}
	return user.Settings, nil
}

// UpdateSettings merges the provided keys into the user's settings
// object. Keys not present in the request are left untouched.
func (s *UserService) UpdateSettings(userID uuid.UUID, settings map[string]interface{}) (models.JSONB, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.Settings == nil {
		user.Settings = make(models.JSONB)
	}
	for key, value := range settings {
		user.Settings[key] = value
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return user.Settings, nil
}

func (s *UserService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return errors.New("invalid password")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *UserService) DeleteAccount(userID uuid.UUID, password string) error {
	// Find user
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	// Verify password
	if err := user.CheckPassword(password); err != nil {
		return errors.New("invalid password")
	}

	// Soft delete the user and everything they own
	return s.db.Transaction(func(tx *gorm.DB) error {
		var applicationIDs []uuid.UUID
		if err := tx.Model(&models.ApplicationPackage{}).
			Where("user_id = ?", userID).
			Pluck("id", &applicationIDs).Error; err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}

		if len(applicationIDs) > 0 {
			if err := tx.Where("application_id IN ?", applicationIDs).Delete(&models.Interview{}).Error; err != nil {
				return fmt.Errorf("failed to delete interviews: %w", err)
			}
			if err := tx.Where("application_id IN ?", applicationIDs).Delete(&models.SubmissionStatus{}).Error; err != nil {
				return fmt.Errorf("failed to delete submission records: %w", err)
			}
			if err := tx.Where("application_id IN ?", applicationIDs).Delete(&models.Requirement{}).Error; err != nil {
				return fmt.Errorf("failed to delete requirements: %w", err)
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.ApplicationPackage{}).Error; err != nil {
				return fmt.Errorf("failed to delete applications: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("failed to delete documents: %w", err)
		}
		if err := tx.Where("created_by = ? AND is_system_template = ?", userID, false).Delete(&models.RequirementsTemplate{}).Error; err != nil {
			return fmt.Errorf("failed to delete templates: %w", err)
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
