package onboarding

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	onboardingService "github.com/bansalsd420/smart-ambulance-api/internal/service/onboarding"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *onboardingService.Service
}

func NewHandler(service *onboardingService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	decide := auth.RequireRole(model.RoleSuperadmin, model.RoleFleetAdmin, model.RoleParamedic)

	onboardings := r.Group("/onboardings")
	{
		onboardings.POST("", auth.RequireRole(model.RoleSuperadmin, model.RoleHospitalAdmin, model.RoleFleetAdmin, model.RoleParamedic), h.Create)
		onboardings.GET("/:id", h.Get)
		onboardings.POST("/:id/approve", decide, h.Approve)
		onboardings.POST("/:id/reject", decide, h.Reject)
		onboardings.POST("/:id/start", h.Start)
		onboardings.POST("/:id/offboard", h.Offboard)
		onboardings.PUT("/:id/prescription", auth.RequireRole(model.RoleSuperadmin, model.RoleDoctor), h.SetPrescription)
		onboardings.GET("/:id/prescription", auth.RequireRole(model.RoleSuperadmin, model.RoleDoctor, model.RoleHospitalAdmin), h.GetPrescription)
	}
	r.GET("/ambulances/:id/onboarding", h.ActiveForAmbulance)
}

func (h *Handler) Create(c *gin.Context) {
	var req onboardingService.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	ob, err := h.service.Create(c.Request.Context(), middleware.Principal(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, ob)
}

func (h *Handler) Get(c *gin.Context) {
	h.respond(c, func(id int64) (*model.Onboarding, error) {
		return h.service.Get(c.Request.Context(), id)
	})
}

func (h *Handler) Approve(c *gin.Context) {
	h.respond(c, func(id int64) (*model.Onboarding, error) {
		return h.service.Approve(c.Request.Context(), middleware.Principal(c), id)
	})
}

func (h *Handler) Reject(c *gin.Context) {
	h.respond(c, func(id int64) (*model.Onboarding, error) {
		return h.service.Reject(c.Request.Context(), middleware.Principal(c), id)
	})
}

func (h *Handler) Start(c *gin.Context) {
	h.respond(c, func(id int64) (*model.Onboarding, error) {
		return h.service.Start(c.Request.Context(), middleware.Principal(c), id)
	})
}

func (h *Handler) Offboard(c *gin.Context) {
	h.respond(c, func(id int64) (*model.Onboarding, error) {
		return h.service.Offboard(c.Request.Context(), middleware.Principal(c), id)
	})
}

type prescriptionRequest struct {
	Prescription model.RawJSON `json:"prescription" binding:"required"`
}

func (h *Handler) SetPrescription(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req prescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	ob, err := h.service.SetPrescription(c.Request.Context(), middleware.Principal(c), id, req.Prescription)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ob)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	ob, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prescription": ob.Prescription})
}

// ActiveForAmbulance returns the current in-flight transport for the
// ambulance, or null.
func (h *Handler) ActiveForAmbulance(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	ob, err := h.service.GetActiveForAmbulance(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ob)
}

func (h *Handler) respond(c *gin.Context, fn func(id int64) (*model.Onboarding, error)) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	ob, err := fn(id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ob)
}
