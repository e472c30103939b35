// internal/handlers/application.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/i18n"
	"github.com/gradpath/gradpath-backend/internal/models"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// GET /applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := services.ApplicationSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		s := models.PackageStatus(status)
		params.Status = &s
	}
	if appType := c.Query("type"); appType != "" {
		t := models.ApplicationType(appType)
		params.Type = &t
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.PackagePriority(priority)
		params.Priority = &p
	}

	applications, total, err := h.applicationService.ListApplications(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(applications, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.CreateApplication(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationCreated),
		"application": application,
	})
}

// GET /applications/stats
func (h *ApplicationHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.applicationService.GetStats(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	dashboard, err := h.applicationService.GetDashboard(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// PUT /applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	var req services.UpdateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateApplication(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationUpdated),
		"application": application,
	})
}

// DELETE /applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	if err := h.applicationService.DeleteApplication(id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyApplicationDeleted),
	})
}
