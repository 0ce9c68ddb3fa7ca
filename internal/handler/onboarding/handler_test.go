package onboarding

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/pkg/auth"
)

// newGatedRouter registers the routes behind a principal of the given
// role. The service is nil: requests that clear the role gate would
// panic, so these tests only exercise rejections.
func newGatedRouter(role model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.ContextPrincipal, &model.Principal{ID: 1, Role: role})
		}
		c.Next()
	})

	authMW := middleware.NewAuthMiddleware(auth.NewJWTService("test-secret", time.Hour))
	NewHandler(nil).RegisterRoutes(&engine.RouterGroup, authMW)
	return engine
}

func perform(t *testing.T, engine *gin.Engine, method, path string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRoleGates(t *testing.T) {
	tests := []struct {
		name   string
		role   model.Role
		method string
		path   string
		want   int
	}{
		{"doctor cannot create", model.RoleDoctor, http.MethodPost, "/onboardings", http.StatusForbidden},
		{"hospital_user cannot create", model.RoleHospitalUser, http.MethodPost, "/onboardings", http.StatusForbidden},
		{"hospital_admin cannot approve", model.RoleHospitalAdmin, http.MethodPost, "/onboardings/1/approve", http.StatusForbidden},
		{"doctor cannot reject", model.RoleDoctor, http.MethodPost, "/onboardings/1/reject", http.StatusForbidden},
		{"paramedic cannot write prescription", model.RoleParamedic, http.MethodPut, "/onboardings/1/prescription", http.StatusForbidden},
		{"fleet_admin cannot read prescription", model.RoleFleetAdmin, http.MethodGet, "/onboardings/1/prescription", http.StatusForbidden},
		{"unauthenticated create", model.Role(""), http.MethodPost, "/onboardings", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newGatedRouter(tt.role)
			assert.Equal(t, tt.want, perform(t, engine, tt.method, tt.path))
		})
	}
}
