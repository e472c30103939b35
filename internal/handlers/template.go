// internal/handlers/template.go
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

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// GET /templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := services.TemplateFilterParams{
		PaginationParams: utils.GetPaginationParams(c),
		IncludeSystem:    c.DefaultQuery("include_system", "true") == "true",
	}

	if category := c.Query("category"); category != "" {
		cat := models.TemplateCategory(category)
		params.Category = &cat
	}

	templates, total, err := h.templateService.ListTemplates(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(templates, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	template, err := h.templateService.CreateTemplate(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTemplateCreated),
		"template": template,
	})
}

// GET /templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid template ID", nil)
		return
	}

	template, err := h.templateService.GetTemplate(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyTemplateNotFound)
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
		"template": template,
	})
}

// PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid template ID", nil)
		return
	}

	var req services.UpdateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	template, err := h.templateService.UpdateTemplate(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyTemplateNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTemplateUpdated),
		"template": template,
	})
}

// DELETE /templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid template ID", nil)
		return
	}

	if err := h.templateService.DeleteTemplate(id, userID); err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyTemplateNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTemplateDeleted),
	})
}

// POST /templates/:id/apply
func (h *TemplateHandler) ApplyTemplate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid template ID", nil)
		return
	}

	var req struct {
		ApplicationID string `json:"application_id" validate:"required,uuid"`
	}

	if !bindJSON(c, &req) {
		return
	}

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	requirements, err := h.templateService.ApplyTemplate(id, applicationID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "template not found") {
			utils.NotFoundResponse(c, i18n.KeyTemplateNotFound)
			return
		}
		if strings.Contains(err.Error(), "application not found") {
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

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyTemplateApplied),
		"requirements": requirements,
	})
}
