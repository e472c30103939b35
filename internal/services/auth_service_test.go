// internal/services/auth_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/config"
	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	utils.SetJWTSecret("test-secret-key")
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret-key",
			AccessTokenTTL:  24,
			RefreshTokenTTL: 168,
		},
	}
	return NewAuthService(db, cfg, nil), db
}

func TestRegisterAndLogin(t *testing.T) {
	service, db := newTestAuthService(t)

	response, err := service.Register(&RegisterRequest{
		Username: "newstudent",
		Email:    "newstudent@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, 24*3600, response.ExpiresIn)
	assert.Equal(t, models.UserStatusActive, response.User.Status)

	login, err := service.Login(&LoginRequest{
		Email:    "newstudent@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, login.User.ID)
	require.NotNil(t, login.User.LastLoginAt)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", response.User.ID).Error)
	assert.NotEqual(t, "TestPass123!", stored.PasswordHash)
}

func TestRegisterDuplicateEmailAndUsername(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(&RegisterRequest{
		Username: "firstuser",
		Email:    "taken@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	_, err = service.Register(&RegisterRequest{
		Username: "seconduser",
		Email:    "taken@example.com",
		Password: "TestPass123!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already exists")

	_, err = service.Register(&RegisterRequest{
		Username: "firstuser",
		Email:    "fresh@example.com",
		Password: "TestPass123!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(&RegisterRequest{
		Username: "weakpass",
		Email:    "weakpass@example.com",
		Password: "password",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoginWrongCredentials(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.Register(&RegisterRequest{
		Username: "loginuser",
		Email:    "loginuser@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	// Unknown email and wrong password produce the same message
	_, err = service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "TestPass123!",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "invalid email or password")

	_, err = service.Login(&LoginRequest{
		Email:    "loginuser@example.com",
		Password: "WrongPass123!",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "invalid email or password")
}

func TestLoginSuspendedAccount(t *testing.T) {
	service, db := newTestAuthService(t)

	response, err := service.Register(&RegisterRequest{
		Username: "suspended",
		Email:    "suspended@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", response.User.ID).
		Update("status", models.UserStatusSuspended).Error)

	_, err = service.Login(&LoginRequest{
		Email:    "suspended@example.com",
		Password: "TestPass123!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suspended")
}

func TestRefreshTokenRotation(t *testing.T) {
	service, _ := newTestAuthService(t)

	response, err := service.Register(&RegisterRequest{
		Username: "refresher",
		Email:    "refresher@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(response.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	_, err = service.RefreshToken("not-a-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")
}

func TestForgotAndResetPassword(t *testing.T) {
	service, db := newTestAuthService(t)

	response, err := service.Register(&RegisterRequest{
		Username: "resetuser",
		Email:    "resetuser@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	// Unknown email is silently accepted
	require.NoError(t, service.ForgotPassword(&ForgotPasswordRequest{
		Email: "ghost@example.com",
	}))

	require.NoError(t, service.ForgotPassword(&ForgotPasswordRequest{
		Email: "resetuser@example.com",
	}))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", response.User.ID).Error)
	token, ok := user.Settings["reset_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(&ResetPasswordRequest{
		Token:       token,
		NewPassword: "FreshPass456!",
	}))

	_, err = service.Login(&LoginRequest{
		Email:    "resetuser@example.com",
		Password: "TestPass123!",
	})
	require.Error(t, err)

	login, err := service.Login(&LoginRequest{
		Email:    "resetuser@example.com",
		Password: "FreshPass456!",
	})
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, login.User.ID)

	// Token is single use
	err = service.ResetPassword(&ResetPasswordRequest{
		Token:       token,
		NewPassword: "AnotherPass789!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	service, db := newTestAuthService(t)

	response, err := service.Register(&RegisterRequest{
		Username: "expired",
		Email:    "expired@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", response.User.ID).Error)
	if user.Settings == nil {
		user.Settings = make(models.JSONB)
	}
	user.Settings["reset_token"] = "stale-token"
	user.Settings["reset_token_expires"] = time.Now().Add(-1 * time.Hour).Unix()
	require.NoError(t, db.Save(&user).Error)

	err = service.ResetPassword(&ResetPasswordRequest{
		Token:       "stale-token",
		NewPassword: "FreshPass456!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
