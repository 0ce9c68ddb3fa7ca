package approval

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	approvalService "github.com/bansalsd420/smart-ambulance-api/internal/service/approval"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *approvalService.Service
}

func NewHandler(service *approvalService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	approvals := r.Group("/ambulance-approvals", auth.RequireRole(model.RoleSuperadmin))
	{
		approvals.GET("", h.List)
		approvals.GET("/:id", h.Get)
		approvals.POST("/:id/approve", h.Approve)
		approvals.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) List(c *gin.Context) {
	status := model.ApprovalStatus(c.Query("status"))
	approvals, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, approvals)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	approval, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, approval)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	approval, err := h.service.Approve(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, approval)
}

type rejectRequest struct {
	Reason *string `json:"reason"`
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	approval, err := h.service.Reject(c.Request.Context(), middleware.Principal(c), id, req.Reason)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, approval)
}
