package fleet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	repo    repository.FleetRepository
	auditor *audit.Service
}

func NewHandler(repo repository.FleetRepository, auditor *audit.Service) *Handler {
	return &Handler{repo: repo, auditor: auditor}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	fleets := r.Group("/fleets")
	{
		fleets.POST("", auth.RequireRole(model.RoleSuperadmin), h.Create)
		fleets.GET("", h.List)
		fleets.GET("/:id", h.Get)
		fleets.PUT("/:id", auth.RequireRole(model.RoleSuperadmin, model.RoleFleetAdmin), h.Update)
		fleets.DELETE("/:id", auth.RequireRole(model.RoleSuperadmin), h.Delete)
	}
}

type fleetRequest struct {
	Name         string  `json:"name" binding:"required"`
	ContactPhone *string `json:"contact_phone"`
}

func (h *Handler) Create(c *gin.Context) {
	var req fleetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	principal := middleware.Principal(c)
	fleet := &model.Fleet{
		Name:         req.Name,
		ContactPhone: req.ContactPhone,
	}
	if principal != nil {
		fleet.CreatedBy = &principal.ID
	}
	if err := h.repo.Create(c.Request.Context(), fleet); err != nil {
		handler.Error(c, err)
		return
	}
	h.auditor.Log(c.Request.Context(), fleet.CreatedBy, "create", "fleet", &fleet.ID, nil)
	c.JSON(http.StatusCreated, fleet)
}

func (h *Handler) List(c *gin.Context) {
	fleets, err := h.repo.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, fleets)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	fleet, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, fleet)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	principal := middleware.Principal(c)
	if principal != nil && principal.Role == model.RoleFleetAdmin {
		if principal.FleetID == nil || *principal.FleetID != id {
			handler.Error(c, apperrors.Forbidden("cannot update another fleet"))
			return
		}
	}

	fleet, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req fleetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	fleet.Name = req.Name
	fleet.ContactPhone = req.ContactPhone

	if err := h.repo.Update(c.Request.Context(), fleet); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, fleet)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
