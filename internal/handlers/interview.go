// internal/handlers/interview.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/i18n"
	"github.com/gradpath/gradpath-backend/internal/services"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

type InterviewHandler struct {
	interviewService *services.InterviewService
}

func NewInterviewHandler(interviewService *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// GET /applications/:id/interviews
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)

	interviews, total, err := h.interviewService.ListInterviews(applicationID, userID, params)
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

	result := utils.CreatePaginationResult(interviews, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /applications/:id/interviews
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
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

	var req services.CreateInterviewRequest
	if !bindJSON(c, &req) {
		return
	}

	interview, err := h.interviewService.CreateInterview(applicationID, userID, &req)
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
		"message":   i18n.T(lang, i18n.KeyInterviewCreated),
		"interview": interview,
	})
}

// PUT /interviews/:id
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid interview ID", nil)
		return
	}

	var req services.UpdateInterviewRequest
	if !bindJSON(c, &req) {
		return
	}

	interview, err := h.interviewService.UpdateInterview(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyInterviewNotFound)
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
		"message":   i18n.T(lang, i18n.KeyInterviewUpdated),
		"interview": interview,
	})
}

// DELETE /interviews/:id
func (h *InterviewHandler) DeleteInterview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid interview ID", nil)
		return
	}

	if err := h.interviewService.DeleteInterview(id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyInterviewNotFound)
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
		"message": i18n.T(lang, i18n.KeyInterviewDeleted),
	})
}
