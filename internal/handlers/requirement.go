// internal/handlers/requirement.go
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

type RequirementHandler struct {
	requirementService *services.RequirementService
}

func NewRequirementHandler(requirementService *services.RequirementService) *RequirementHandler {
	return &RequirementHandler{
		requirementService: requirementService,
	}
}

// GET /applications/:id/requirements
func (h *RequirementHandler) ListRequirements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	params := services.RequirementFilterParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		s := models.RequirementStatus(status)
		params.Status = &s
	}
	if category := c.Query("category"); category != "" {
		cat := models.RequirementCategory(category)
		params.Category = &cat
	}
	if reqType := c.Query("type"); reqType != "" {
		t := models.RequirementType(reqType)
		params.Type = &t
	}
	if isRequired := c.Query("is_required"); isRequired != "" {
		required := isRequired == "true"
		params.IsRequired = &required
	}

	requirements, total, err := h.requirementService.ListRequirements(applicationID, userID, params)
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

	result := utils.CreatePaginationResult(requirements, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /applications/:id/requirements
func (h *RequirementHandler) CreateRequirement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	var req services.CreateRequirementRequest
	if !bindJSON(c, &req) {
		return
	}

	requirement, err := h.requirementService.CreateRequirement(applicationID, userID, &req)
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

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyRequirementCreated),
		"requirement": requirement,
	})
}

// POST /applications/:id/requirements/bulk
func (h *RequirementHandler) BulkCreateRequirements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	var req struct {
		Requirements []services.CreateRequirementRequest `json:"requirements" validate:"required,min=1,dive"`
	}

	if !bindJSON(c, &req) {
		return
	}

	results, err := h.requirementService.BulkCreateRequirements(applicationID, userID, req.Requirements)
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

	utils.CreatedResponse(c, gin.H{
		"results": results,
	})
}

// PUT /requirements/:id
func (h *RequirementHandler) UpdateRequirement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid requirement ID", nil)
		return
	}

	var req services.UpdateRequirementRequest
	if !bindJSON(c, &req) {
		return
	}

	requirement, err := h.requirementService.UpdateRequirement(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyRequirementNotFound)
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
		"message":     i18n.T(lang, i18n.KeyRequirementUpdated),
		"requirement": requirement,
	})
}

// PATCH /requirements/:id/status
func (h *RequirementHandler) UpdateRequirementStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid requirement ID", nil)
		return
	}

	var req services.UpdateRequirementStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	requirement, err := h.requirementService.UpdateRequirementStatus(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyRequirementNotFound)
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
		"message":     i18n.T(lang, i18n.KeyRequirementStatusUpdated),
		"requirement": requirement,
	})
}

// DELETE /requirements/:id
func (h *RequirementHandler) DeleteRequirement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid requirement ID", nil)
		return
	}

	if err := h.requirementService.DeleteRequirement(id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyRequirementNotFound)
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
		"message": i18n.T(lang, i18n.KeyRequirementDeleted),
	})
}

// POST /requirements/:id/link
func (h *RequirementHandler) LinkDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid requirement ID", nil)
		return
	}

	var req struct {
		DocumentID string `json:"document_id" validate:"required,uuid"`
	}

	if !bindJSON(c, &req) {
		return
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	requirement, err := h.requirementService.LinkDocument(id, documentID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "requirement not found") {
			utils.NotFoundResponse(c, i18n.KeyRequirementNotFound)
			return
		}
		if strings.Contains(err.Error(), "document not found") {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
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
		"message":     i18n.T(lang, i18n.KeyRequirementDocumentLinked),
		"requirement": requirement,
	})
}

// DELETE /requirements/:id/link
func (h *RequirementHandler) UnlinkDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid requirement ID", nil)
		return
	}

	requirement, err := h.requirementService.UnlinkDocument(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyRequirementNotFound)
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
		"message":     i18n.T(lang, i18n.KeyRequirementDocumentUnlinked),
		"requirement": requirement,
	})
}
