package ambulance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	ambulanceService "github.com/bansalsd420/smart-ambulance-api/internal/service/ambulance"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *ambulanceService.Service
}

func NewHandler(service *ambulanceService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware, access *middleware.AccessMiddleware) {
	ambulances := r.Group("/ambulances")
	{
		ambulances.POST("", auth.RequireRole(model.RoleSuperadmin, model.RoleHospitalAdmin, model.RoleFleetAdmin), h.Create)
		ambulances.GET("", h.List)
		ambulances.GET("/:id", access.EnsureAmbulanceAccess(), h.Get)
		ambulances.PUT("/:id", access.EnsureAmbulanceAccess(), h.Update)
		ambulances.POST("/:id/change-owner", access.EnsureAmbulanceAccess(), h.ChangeOwner)
		ambulances.DELETE("/:id/assignments", access.EnsureAmbulanceAccess(), h.ClearAssignments)
		ambulances.DELETE("/:id", auth.RequireRole(model.RoleSuperadmin), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req ambulanceService.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}

	ambulance, err := h.service.Create(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, ambulance)
}

func (h *Handler) List(c *gin.Context) {
	filter := model.AmbulanceFilter{
		Status:    model.AmbulanceStatus(c.Query("status")),
		OwnerType: model.OwnerType(c.Query("owner_type")),
	}
	if raw := c.Query("owner_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handler.Error(c, apperrors.BadRequest("invalid owner_id parameter"))
			return
		}
		filter.OwnerID = id
	}
	ambulances, err := h.service.List(c.Request.Context(), middleware.Principal(c), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ambulances)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	ambulance, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ambulance)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req ambulanceService.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}

	ambulance, err := h.service.Update(c.Request.Context(), middleware.Principal(c), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ambulance)
}

type changeOwnerRequest struct {
	OwnerType string `json:"owner_type" binding:"required"`
	OwnerID   string `json:"owner_id" binding:"required"`
}

func (h *Handler) ChangeOwner(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req changeOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}

	result, err := h.service.ChangeOwner(c.Request.Context(), middleware.Principal(c), id, req.OwnerType, req.OwnerID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ClearAssignments(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	cleared, err := h.service.ClearAssignments(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
