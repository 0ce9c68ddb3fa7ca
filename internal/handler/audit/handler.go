package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	auditService "github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
)

type Handler struct {
	service *auditService.Service
}

func NewHandler(service *auditService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	r.GET("/audit-logs", auth.RequireRole(model.RoleSuperadmin), h.List)
}

func (h *Handler) List(c *gin.Context) {
	filter := model.AuditFilter{ResourceType: c.Query("resource_type")}
	filter.ResourceID, _ = strconv.ParseInt(c.Query("resource_id"), 10, 64)

	logs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
