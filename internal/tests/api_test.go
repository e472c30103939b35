// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gradpath/gradpath-backend/internal/config"
	"github.com/gradpath/gradpath-backend/internal/handlers"
	"github.com/gradpath/gradpath-backend/internal/middleware"
	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("api-test-secret")

	db, err := gorm.Open(sqlite.Open("file:api_suite?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.ApplicationPackage{},
		&models.Requirement{},
		&models.Document{},
		&models.RequirementsTemplate{},
		&models.Interview{},
		&models.SubmissionStatus{},
		&models.ActivityLog{},
	))
	suite.db = db

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "api-test-secret",
			AccessTokenTTL:  24,
			RefreshTokenTTL: 168,
		},
	}

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg, nil))
	applicationHandler := handlers.NewApplicationHandler(services.NewApplicationService(db))
	requirementHandler := handlers.NewRequirementHandler(services.NewRequirementService(db))

	router := gin.New()
	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
	}

	applications := v1.Group("/applications")
	applications.Use(middleware.AuthRequired())
	{
		applications.GET("", applicationHandler.ListApplications)
		applications.POST("", applicationHandler.CreateApplication)
		applications.GET("/:id", applicationHandler.GetApplication)
		applications.POST("/:id/requirements", requirementHandler.CreateRequirement)
	}

	requirements := v1.Group("/requirements")
	requirements.Use(middleware.AuthRequired())
	{
		requirements.PATCH("/:id/status", requirementHandler.UpdateRequirementStatus)
	}

	suite.router = router
}

func (suite *APITestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if suite.token != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *APITestSuite) TestApplicationLifecycle() {
	w := suite.request("POST", "/v1/auth/register", map[string]interface{}{
		"username": "apiuser",
		"email":    "apiuser@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusCreated, w.Code)
	response := suite.decode(w)
	suite.True(response["success"].(bool))
	data := response["data"].(map[string]interface{})
	suite.token = data["token"].(string)

	// Unauthenticated requests are rejected
	saved := suite.token
	suite.token = ""
	w = suite.request("GET", "/v1/applications", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.token = saved

	w = suite.request("POST", "/v1/applications", map[string]interface{}{
		"name":             "State University",
		"application_type": "school",
		"target_name":      "State University",
	})
	suite.Equal(http.StatusCreated, w.Code)
	response = suite.decode(w)
	suite.True(response["success"].(bool))
	application := response["data"].(map[string]interface{})["application"].(map[string]interface{})
	applicationID := application["id"].(string)
	suite.Equal("draft", application["status"])

	w = suite.request("POST", fmt.Sprintf("/v1/applications/%s/requirements", applicationID), map[string]interface{}{
		"name":             "Official transcript",
		"category":         "academic",
		"requirement_type": "document",
		"is_required":      true,
	})
	suite.Equal(http.StatusCreated, w.Code)
	requirement := suite.decode(w)["data"].(map[string]interface{})["requirement"].(map[string]interface{})
	requirementID := requirement["id"].(string)
	suite.Equal("pending", requirement["status"])

	w = suite.request("PATCH", fmt.Sprintf("/v1/requirements/%s/status", requirementID), map[string]interface{}{
		"status": "completed",
	})
	suite.Equal(http.StatusOK, w.Code)

	// Completing the only requirement drives the package to 100%
	w = suite.request("GET", "/v1/applications/"+applicationID, nil)
	suite.Equal(http.StatusOK, w.Code)
	dashboard := suite.decode(w)["data"].(map[string]interface{})
	progress := dashboard["progress"].(map[string]interface{})
	suite.EqualValues(100, progress["percentage"])
	suite.Equal("ready", dashboard["readiness"])
}

func (suite *APITestSuite) TestForeignApplicationIsForbidden() {
	w := suite.request("POST", "/v1/auth/register", map[string]interface{}{
		"username": "owner_user",
		"email":    "owner@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusCreated, w.Code)
	suite.token = suite.decode(w)["data"].(map[string]interface{})["token"].(string)

	w = suite.request("POST", "/v1/applications", map[string]interface{}{
		"name":             "Private Scholarship",
		"application_type": "scholarship",
		"target_name":      "Private Scholarship",
	})
	suite.Equal(http.StatusCreated, w.Code)
	applicationID := suite.decode(w)["data"].(map[string]interface{})["application"].(map[string]interface{})["id"].(string)

	w = suite.request("POST", "/v1/auth/register", map[string]interface{}{
		"username": "other_user",
		"email":    "other@example.com",
		"password": "TestPass123!",
	})
	suite.Equal(http.StatusCreated, w.Code)
	suite.token = suite.decode(w)["data"].(map[string]interface{})["token"].(string)

	// Another account reading someone else's package gets a 403, not a 500
	w = suite.request("GET", "/v1/applications/"+applicationID, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	response := suite.decode(w)
	suite.False(response["success"].(bool))
	suite.Equal("FORBIDDEN", response["error"].(map[string]interface{})["code"])
}

func (suite *APITestSuite) TestRegisterValidation() {
	w := suite.request("POST", "/v1/auth/register", map[string]interface{}{
		"username": "bad",
		"email":    "not-an-email",
		"password": "weak",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	response := suite.decode(w)
	suite.False(response["success"].(bool))
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
