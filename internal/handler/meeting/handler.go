package meeting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	meetingService "github.com/bansalsd420/smart-ambulance-api/internal/service/meeting"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *meetingService.Service
}

func NewHandler(service *meetingService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/meetings/token", h.IssueToken)
}

type tokenRequest struct {
	OnboardingID int64 `json:"onboarding_id" binding:"required"`
}

func (h *Handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	token := h.service.IssueToken(middleware.Principal(c), req.OnboardingID)
	c.JSON(http.StatusOK, token)
}
