// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/config"
	"github.com/gradpath/gradpath-backend/internal/handlers"
	"github.com/gradpath/gradpath-backend/internal/middleware"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	userService := services.NewUserService(db)
	applicationService := services.NewApplicationService(db)
	requirementService := services.NewRequirementService(db)
	documentService := services.NewDocumentService(db)
	templateService := services.NewTemplateService(db)
	interviewService := services.NewInterviewService(db, notificationService)
	submissionService := services.NewSubmissionService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	requirementHandler := handlers.NewRequirementHandler(requirementService)
	documentHandler := handlers.NewDocumentHandler(documentService, storageService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.ActivityLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/profile", userHandler.UpdateProfile)
			users.GET("/settings", userHandler.GetSettings)
			users.PUT("/settings", userHandler.UpdateSettings)
			users.PUT("/password", userHandler.ChangePassword)
			users.DELETE("/account", userHandler.DeleteAccount)
		}

		// Application package routes
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthRequired())
		{
			applications.GET("", applicationHandler.ListApplications)
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("/stats", applicationHandler.GetStats)
			applications.GET("/:id", applicationHandler.GetApplication)
			applications.PUT("/:id", applicationHandler.UpdateApplication)
			applications.DELETE("/:id", applicationHandler.DeleteApplication)

			// Requirement checklist of one package
			applications.GET("/:id/requirements", requirementHandler.ListRequirements)
			applications.POST("/:id/requirements", requirementHandler.CreateRequirement)
			applications.POST("/:id/requirements/bulk", requirementHandler.BulkCreateRequirements)

			// Interviews of one package
			applications.GET("/:id/interviews", interviewHandler.ListInterviews)
			applications.POST("/:id/interviews", interviewHandler.CreateInterview)

			// Submission tracking of one package
			applications.GET("/:id/submission", submissionHandler.GetSubmission)
			applications.PUT("/:id/submission", submissionHandler.UpdateSubmission)
			applications.POST("/:id/submission/follow-ups", submissionHandler.AddFollowUp)
			applications.PUT("/:id/submission/follow-ups/:followUpId", submissionHandler.UpdateFollowUp)
			applications.DELETE("/:id/submission/follow-ups/:followUpId", submissionHandler.DeleteFollowUp)
		}

		// Requirement routes
		requirements := v1.Group("/requirements")
		requirements.Use(middleware.AuthRequired())
		{
			requirements.PUT("/:id", requirementHandler.UpdateRequirement)
			requirements.PATCH("/:id/status", requirementHandler.UpdateRequirementStatus)
			requirements.DELETE("/:id", requirementHandler.DeleteRequirement)
			requirements.POST("/:id/link", requirementHandler.LinkDocument)
			requirements.DELETE("/:id/link", requirementHandler.UnlinkDocument)
		}

		// Document routes
		documents := v1.Group("/documents")
		documents.Use(middleware.AuthRequired())
		{
			documents.GET("", documentHandler.ListDocuments)
			documents.POST("", documentHandler.CreateDocument)
			documents.POST("/upload", middleware.UploadRateLimit(), documentHandler.UploadDocument)
			documents.GET("/:id", documentHandler.GetDocument)
			documents.GET("/:id/requirements", documentHandler.GetLinkedRequirements)
			documents.GET("/:id/download", documentHandler.DownloadDocument)
			documents.PUT("/:id", documentHandler.UpdateDocument)
			documents.DELETE("/:id", documentHandler.DeleteDocument)
		}

		// Template routes
		templates := v1.Group("/templates")
		templates.Use(middleware.AuthRequired())
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PUT("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
			templates.POST("/:id/apply", templateHandler.ApplyTemplate)
		}

		// Interview routes
		interviews := v1.Group("/interviews")
		interviews.Use(middleware.AuthRequired())
		{
			interviews.PUT("/:id", interviewHandler.UpdateInterview)
			interviews.DELETE("/:id", interviewHandler.DeleteInterview)
		}
	}

	return r
}
