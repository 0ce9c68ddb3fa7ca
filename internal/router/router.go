package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	ambulanceHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/ambulance"
	approvalHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/approval"
	assignmentHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/assignment"
	auditHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/audit"
	authHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/auth"
	connectionHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/connection"
	deviceHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/device"
	fleetHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/fleet"
	healthHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/health"
	hospitalHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/hospital"
	meetingHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/meeting"
	onboardingHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/onboarding"
	patientHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/patient"
	staffHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/staff"
	userHandler "github.com/bansalsd420/smart-ambulance-api/internal/handler/user"
	"github.com/bansalsd420/smart-ambulance-api/internal/middleware"
)

// Handlers bundles every route-registering handler.
type Handlers struct {
	Health     *healthHandler.Handler
	Auth       *authHandler.Handler
	Ambulance  *ambulanceHandler.Handler
	Assignment *assignmentHandler.Handler
	Approval   *approvalHandler.Handler
	Onboarding *onboardingHandler.Handler
	Connection *connectionHandler.Handler
	Hospital   *hospitalHandler.Handler
	Fleet      *fleetHandler.Handler
	User       *userHandler.Handler
	Staff      *staffHandler.Handler
	Patient    *patientHandler.Handler
	Device     *deviceHandler.Handler
	Meeting    *meetingHandler.Handler
	Audit      *auditHandler.Handler
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	Timeout    time.Duration
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	access   *middleware.AccessMiddleware
	handlers Handlers
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(auth *middleware.AuthMiddleware, access *middleware.AccessMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		access:   access,
		handlers: handlers,
		metrics:  newRouterMetrics(),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.CORS(config.CORSConfig),
	)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(limiter.RateLimit())

	middleware.RegisterValidators()
	return r
}

func (r *Router) Setup() {
	// Health and metrics stay outside authentication.
	r.handlers.Health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	r.handlers.Auth.RegisterRoutes(api)

	protected := api.Group("", r.auth.Authenticate())
	{
		r.handlers.Ambulance.RegisterRoutes(protected, r.auth, r.access)
		r.handlers.Assignment.RegisterRoutes(protected, r.auth, r.access)
		r.handlers.Approval.RegisterRoutes(protected, r.auth)
		r.handlers.Onboarding.RegisterRoutes(protected, r.auth)
		r.handlers.Connection.RegisterRoutes(protected, r.auth)
		r.handlers.Hospital.RegisterRoutes(protected, r.auth)
		r.handlers.Fleet.RegisterRoutes(protected, r.auth)
		r.handlers.User.RegisterRoutes(protected, r.auth)
		r.handlers.Staff.RegisterRoutes(protected, r.auth)
		r.handlers.Patient.RegisterRoutes(protected)
		r.handlers.Device.RegisterRoutes(protected, r.access)
		r.handlers.Meeting.RegisterRoutes(protected)
		r.handlers.Audit.RegisterRoutes(protected, r.auth)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
