package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	staffService "github.com/bansalsd420/smart-ambulance-api/internal/service/staff"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *staffService.Service
}

func NewHandler(service *staffService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	adminOnly := auth.RequireRole(model.RoleSuperadmin, model.RoleHospitalAdmin, model.RoleFleetAdmin)

	paramedics := r.Group("/paramedics")
	{
		paramedics.POST("", adminOnly, h.CreateParamedic)
		paramedics.GET("", h.ListParamedics)
		paramedics.GET("/:id", h.GetParamedic)
		paramedics.PUT("/:id", adminOnly, h.UpdateParamedic)
	}
	doctors := r.Group("/doctors")
	{
		doctors.POST("", adminOnly, h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", adminOnly, h.UpdateDoctor)
	}
}

func (h *Handler) CreateParamedic(c *gin.Context) {
	var req staffService.CreateParamedicInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	p, err := h.service.CreateParamedic(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req staffService.CreateDoctorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	d, err := h.service.CreateDoctor(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetParamedic(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	p, err := h.service.GetParamedic(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	d, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) ListParamedics(c *gin.Context) {
	paramedics, err := h.service.ListParamedics(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, paramedics)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// updateParamedicRequest embeds the create fields plus the optional owner
// pair, which must be supplied together.
type updateParamedicRequest struct {
	staffService.UpdateParamedicInput
	OwnerType *string `json:"owner_type"`
	OwnerID   *string `json:"owner_id"`
}

type updateDoctorRequest struct {
	staffService.UpdateDoctorInput
	OwnerType *string `json:"owner_type"`
	OwnerID   *string `json:"owner_id"`
}

func (h *Handler) UpdateParamedic(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req updateParamedicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	p, err := h.service.UpdateParamedic(c.Request.Context(), middleware.Principal(c), id, &req.UpdateParamedicInput, req.OwnerType, req.OwnerID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req updateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	d, err := h.service.UpdateDoctor(c.Request.Context(), middleware.Principal(c), id, &req.UpdateDoctorInput, req.OwnerType, req.OwnerID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
