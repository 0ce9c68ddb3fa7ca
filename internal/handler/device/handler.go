package device

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	deviceService "github.com/bansalsd420/smart-ambulance-api/internal/service/device"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Handler struct {
	service *deviceService.Service
}

func NewHandler(service *deviceService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.POST("/device-data", h.Ingest)
	r.GET("/ambulances/:id/device-data", access.EnsureAmbulanceAccess(), h.List)
}

type ingestRequest struct {
	AmbulanceID int64         `json:"ambulance_id" binding:"required"`
	DeviceID    *string       `json:"device_id"`
	Payload     model.RawJSON `json:"payload" binding:"required"`
}

func (h *Handler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	data, err := h.service.Ingest(c.Request.Context(), req.AmbulanceID, req.DeviceID, req.Payload)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, data)
}

func (h *Handler) List(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}

	filter := model.DeviceDataFilter{}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = &t
		}
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))

	data, err := h.service.ListForAmbulance(c.Request.Context(), id, filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
