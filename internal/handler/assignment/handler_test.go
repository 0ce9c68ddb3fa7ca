package assignment

import (
	"context"
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

// openAccess authorizes every principal for every ambulance.
type openAccess struct{}

func (openAccess) Authorize(context.Context, *model.Principal, int64) (*model.Ambulance, error) {
	return &model.Ambulance{ID: 1, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}}, nil
}

func (openAccess) AuthorizeAmbulance(context.Context, *model.Principal, *model.Ambulance) error {
	return nil
}

func newTestRouter(role model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextPrincipal, &model.Principal{ID: 1, Role: role})
		c.Next()
	})

	authMW := middleware.NewAuthMiddleware(auth.NewJWTService("test-secret", time.Hour))
	NewHandler(nil).RegisterRoutes(&engine.RouterGroup, authMW, middleware.NewAccessMiddleware(openAccess{}))
	return engine
}

func perform(engine *gin.Engine, method, path, body string) int {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRemoveRequiresAdminRole(t *testing.T) {
	engine := newTestRouter(model.RoleParamedic)
	assert.Equal(t, http.StatusForbidden, perform(engine, http.MethodDelete, "/assignments/1", ""))
}

func TestAssignEmptyBatchIsUnprocessable(t *testing.T) {
	engine := newTestRouter(model.RoleSuperadmin)
	code := perform(engine, http.MethodPost, "/ambulances/1/assign",
		`{"assignee_type":"paramedic","assignee_ids":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestAssignWithoutAssigneeIsBadRequest(t *testing.T) {
	engine := newTestRouter(model.RoleSuperadmin)
	code := perform(engine, http.MethodPost, "/ambulances/1/assign",
		`{"assignee_type":"paramedic"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}
