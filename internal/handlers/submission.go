// internal/handlers/submission.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/i18n"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// GET /applications/:id/submission
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	submission, err := h.submissionService.GetSubmission(applicationID, userID)
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

	utils.SuccessResponse(c, gin.H{
		"submission": submission,
	})
}

// PUT /applications/:id/submission
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
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

	var req services.UpdateSubmissionRequest
	if !bindJSON(c, &req) {
		return
	}

	submission, err := h.submissionService.UpdateSubmission(applicationID, userID, &req)
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
		"message":    i18n.T(lang, i18n.KeySubmissionUpdated),
		"submission": submission,
	})
}

// POST /applications/:id/submission/follow-ups
func (h *SubmissionHandler) AddFollowUp(c *gin.Context) {
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

	var req services.AddFollowUpRequest
	if !bindJSON(c, &req) {
		return
	}

	submission, err := h.submissionService.AddFollowUp(applicationID, userID, &req)
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
		"message":    i18n.T(lang, i18n.KeyFollowUpAdded),
		"submission": submission,
	})
}

// PUT /applications/:id/submission/follow-ups/:followUpId
func (h *SubmissionHandler) UpdateFollowUp(c *gin.Context) {
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

	followUpID, err := uuid.Parse(c.Param("followUpId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid follow-up ID", nil)
		return
	}

	var req services.UpdateFollowUpRequest
	if !bindJSON(c, &req) {
		return
	}

	submission, err := h.submissionService.UpdateFollowUp(applicationID, followUpID, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "follow-up not found") {
			utils.NotFoundResponse(c, i18n.KeyFollowUpNotFound)
			return
		}
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
		"message":    i18n.T(lang, i18n.KeyFollowUpUpdated),
		"submission": submission,
	})
}

// DELETE /applications/:id/submission/follow-ups/:followUpId
func (h *SubmissionHandler) DeleteFollowUp(c *gin.Context) {
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

	followUpID, err := uuid.Parse(c.Param("followUpId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid follow-up ID", nil)
		return
	}

	submission, err := h.submissionService.DeleteFollowUp(applicationID, followUpID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "follow-up not found") {
			utils.NotFoundResponse(c, i18n.KeyFollowUpNotFound)
			return
		}
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
		"message":    i18n.T(lang, i18n.KeyFollowUpDeleted),
		"submission": submission,
	})
}
