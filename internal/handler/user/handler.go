package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	userService "github.com/bansalsd420/smart-ambulance-api/internal/service/user"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *userService.Service
}

func NewHandler(service *userService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	users := r.Group("/users", auth.RequireRole(model.RoleSuperadmin, model.RoleHospitalAdmin, model.RoleFleetAdmin))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req userService.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	user, err := h.service.Create(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) List(c *gin.Context) {
	filter := model.UserFilter{Role: model.Role(c.Query("role"))}
	filter.HospitalID, _ = strconv.ParseInt(c.Query("hospital_id"), 10, 64)
	filter.FleetID, _ = strconv.ParseInt(c.Query("fleet_id"), 10, 64)

	// Non-superadmins only see their own organization.
	principal := middleware.Principal(c)
	if principal != nil && principal.Role != model.RoleSuperadmin {
		if principal.HospitalID != nil {
			filter.HospitalID = *principal.HospitalID
		}
		if principal.FleetID != nil {
			filter.FleetID = *principal.FleetID
		}
	}

	users, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
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
