package hospital

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

// Handler serves hospital CRUD straight from the repository; there is no
// business logic beyond role gating.
type Handler struct {
	repo    repository.HospitalRepository
	auditor *audit.Service
}

func NewHandler(repo repository.HospitalRepository, auditor *audit.Service) *Handler {
	return &Handler{repo: repo, auditor: auditor}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.POST("", auth.RequireRole(model.RoleSuperadmin), h.Create)
		hospitals.GET("", h.List)
		hospitals.GET("/:id", h.Get)
		hospitals.PUT("/:id", auth.RequireRole(model.RoleSuperadmin, model.RoleHospitalAdmin), h.Update)
		hospitals.DELETE("/:id", auth.RequireRole(model.RoleSuperadmin), h.Delete)
	}
}

type hospitalRequest struct {
	Name              string        `json:"name" binding:"required"`
	Address           *string       `json:"address"`
	ContactPhone      *string       `json:"contact_phone"`
	EmergencyServices bool          `json:"emergency_services"`
	TotalBeds         *int          `json:"total_beds"`
	AvailableBeds     *int          `json:"available_beds"`
	Metadata          model.RawJSON `json:"metadata"`
}

func (h *Handler) Create(c *gin.Context) {
	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	principal := middleware.Principal(c)
	hospital := &model.Hospital{
		Name:              req.Name,
		Address:           req.Address,
		ContactPhone:      req.ContactPhone,
		EmergencyServices: req.EmergencyServices,
		TotalBeds:         req.TotalBeds,
		AvailableBeds:     req.AvailableBeds,
		Status:            "active",
		Metadata:          req.Metadata,
	}
	if principal != nil {
		hospital.CreatedBy = &principal.ID
	}
	if err := h.repo.Create(c.Request.Context(), hospital); err != nil {
		handler.Error(c, err)
		return
	}
	h.auditor.Log(c.Request.Context(), hospital.CreatedBy, "create", "hospital", &hospital.ID, nil)
	c.JSON(http.StatusCreated, hospital)
}

func (h *Handler) List(c *gin.Context) {
	hospitals, err := h.repo.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	hospital, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, hospital)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	principal := middleware.Principal(c)
	if principal != nil && principal.Role == model.RoleHospitalAdmin {
		if principal.HospitalID == nil || *principal.HospitalID != id {
			handler.Error(c, apperrors.Forbidden("cannot update another hospital"))
			return
		}
	}

	hospital, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	hospital.Name = req.Name
	hospital.Address = req.Address
	hospital.ContactPhone = req.ContactPhone
	hospital.EmergencyServices = req.EmergencyServices
	hospital.TotalBeds = req.TotalBeds
	hospital.AvailableBeds = req.AvailableBeds
	if req.Metadata != nil {
		hospital.Metadata = req.Metadata
	}

	if err := h.repo.Update(c.Request.Context(), hospital); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, hospital)
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
