package assignment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	assignmentService "github.com/bansalsd420/smart-ambulance-api/internal/service/assignment"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *assignmentService.Service
}

func NewHandler(service *assignmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware, access *middleware.AccessMiddleware) {
	r.POST("/ambulances/:id/assign", access.EnsureAmbulanceAccess(), h.Assign)
	r.GET("/ambulances/:id/assignments", access.EnsureAmbulanceAccess(), h.List)
	r.DELETE("/assignments/:id", auth.RequireRole(model.RoleSuperadmin, model.RoleHospitalAdmin, model.RoleFleetAdmin), h.Remove)
}

// assignRequest covers both shapes: a single assignee_id or a batch of
// assignee_ids.
type assignRequest struct {
	AssigneeType string  `json:"assignee_type" binding:"required,assigneetype"`
	AssigneeID   *int64  `json:"assignee_id"`
	AssigneeIDs  []int64 `json:"assignee_ids"`
}

func (h *Handler) Assign(c *gin.Context) {
	ambulanceID, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	typ := model.AssigneeType(req.AssigneeType)
	principal := middleware.Principal(c)

	switch {
	case req.AssigneeID != nil:
		assignment, err := h.service.Assign(c.Request.Context(), principal, ambulanceID, typ, *req.AssigneeID)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, assignment)

	case req.AssigneeIDs != nil:
		if len(req.AssigneeIDs) == 0 {
			handler.Error(c, apperrors.Validation("assignee_ids must not be empty"))
			return
		}
		// Per-item failures are data in the 200 body, never an HTTP
		// error.
		resp, err := h.service.AssignBatch(c.Request.Context(), principal, ambulanceID, typ, req.AssigneeIDs)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	default:
		handler.Error(c, apperrors.BadRequest("assignee_id or assignee_ids is required"))
	}
}

func (h *Handler) List(c *gin.Context) {
	ambulanceID, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	assignments, err := h.service.ListForAmbulance(c.Request.Context(), ambulanceID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *Handler) Remove(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	if err := h.service.Remove(c.Request.Context(), middleware.Principal(c), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
