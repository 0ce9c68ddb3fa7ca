package connection

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	connectionService "github.com/bansalsd420/smart-ambulance-api/internal/service/connection"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *connectionService.Service
}

func NewHandler(service *connectionService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	requests := r.Group("/connection-requests")
	{
		requests.POST("", auth.RequireRole(model.RoleHospitalAdmin, model.RoleHospitalUser), h.Request)
		requests.GET("", auth.RequireRole(model.RoleSuperadmin, model.RoleFleetAdmin), h.ListIncoming)
		requests.POST("/:id/approve", auth.RequireRole(model.RoleSuperadmin, model.RoleFleetAdmin), h.Approve)
		requests.POST("/:id/reject", auth.RequireRole(model.RoleSuperadmin, model.RoleFleetAdmin), h.Reject)
	}
	r.GET("/connections", h.ListConnections)
}

type createRequest struct {
	AmbulanceCode string `json:"ambulance_code" binding:"required"`
}

func (h *Handler) Request(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	request, err := h.service.RequestByCode(c.Request.Context(), middleware.Principal(c), req.AmbulanceCode)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *Handler) ListIncoming(c *gin.Context) {
	fleetID, _ := strconv.ParseInt(c.Query("fleet_id"), 10, 64)
	requests, err := h.service.ListIncoming(c.Request.Context(), middleware.Principal(c), fleetID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	request, err := h.service.Approve(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	request, err := h.service.Reject(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) ListConnections(c *gin.Context) {
	hospitalID, _ := strconv.ParseInt(c.Query("hospital_id"), 10, 64)
	connections, err := h.service.ListConnections(c.Request.Context(), middleware.Principal(c), hospitalID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, connections)
}
