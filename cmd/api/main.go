package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/bansalsd420/smart-ambulance-api/internal/config"
	"github.com/bansalsd420/smart-ambulance-api/internal/email"
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
	"github.com/bansalsd420/smart-ambulance-api/internal/repository/postgres"
	"github.com/bansalsd420/smart-ambulance-api/internal/router"
	accessService "github.com/bansalsd420/smart-ambulance-api/internal/service/access"
	ambulanceService "github.com/bansalsd420/smart-ambulance-api/internal/service/ambulance"
	approvalService "github.com/bansalsd420/smart-ambulance-api/internal/service/approval"
	assignmentService "github.com/bansalsd420/smart-ambulance-api/internal/service/assignment"
	auditService "github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	authService "github.com/bansalsd420/smart-ambulance-api/internal/service/auth"
	connectionService "github.com/bansalsd420/smart-ambulance-api/internal/service/connection"
	deviceService "github.com/bansalsd420/smart-ambulance-api/internal/service/device"
	meetingService "github.com/bansalsd420/smart-ambulance-api/internal/service/meeting"
	onboardingService "github.com/bansalsd420/smart-ambulance-api/internal/service/onboarding"
	ownerService "github.com/bansalsd420/smart-ambulance-api/internal/service/owner"
	staffService "github.com/bansalsd420/smart-ambulance-api/internal/service/staff"
	userService "github.com/bansalsd420/smart-ambulance-api/internal/service/user"
	"github.com/bansalsd420/smart-ambulance-api/pkg/auth"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
	"github.com/bansalsd420/smart-ambulance-api/pkg/messaging/redis"
	"github.com/bansalsd420/smart-ambulance-api/pkg/metrics"
	"github.com/bansalsd420/smart-ambulance-api/pkg/worker"
)

const serviceName = "smart-ambulance-api"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	ambulanceRepo := postgres.NewAmbulanceRepository(db)
	approvalRepo := postgres.NewApprovalRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	userRepo := postgres.NewUserRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	fleetRepo := postgres.NewFleetRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	onboardingRepo := postgres.NewOnboardingRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)

	appMetrics := metrics.NewMetrics("ambulance", "api")

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	auditSvc := auditService.NewService(auditRepo, appLogger)

	var emailSvc email.Service
	if cfg.Email.Enabled {
		emailSvc = email.NewService(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}, appLogger)
	} else {
		emailSvc = email.NewNoopService(appLogger)
	}

	ownerSvc := ownerService.NewService(hospitalRepo, fleetRepo)
	accessSvc := accessService.NewService(ambulanceRepo, connectionRepo, onboardingRepo)
	ambulanceSvc := ambulanceService.NewService(ambulanceRepo, assignmentRepo, ownerSvc, auditSvc, appMetrics)
	assignmentSvc := assignmentService.NewService(assignmentRepo, ambulanceRepo, staffRepo, auditSvc, appMetrics)
	approvalSvc := approvalService.NewService(approvalRepo, ambulanceRepo, userRepo, emailSvc, auditSvc, appLogger)
	onboardingSvc := onboardingService.NewService(onboardingRepo, ambulanceRepo, patientRepo, auditSvc)
	connectionSvc := connectionService.NewService(connectionRepo, ambulanceRepo, hospitalRepo, userRepo, emailSvc, auditSvc, appLogger)
	authSvc := authService.NewService(userRepo, jwtSvc)
	userSvc := userService.NewService(userRepo, auditSvc)
	staffSvc := staffService.NewService(staffRepo, userRepo, ownerSvc, auditSvc)
	deviceSvc := deviceService.NewService(deviceRepo, outboxRepo, appLogger)
	meetingSvc := meetingService.NewService(cfg.Meeting.BaseURL, time.Duration(cfg.Meeting.TTLMinutes)*time.Minute)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	accessMiddleware := middleware.NewAccessMiddleware(accessSvc)

	// Handlers
	handlers := router.Handlers{
		Health:     healthHandler.NewHandler(serviceName),
		Auth:       authHandler.NewHandler(authSvc),
		Ambulance:  ambulanceHandler.NewHandler(ambulanceSvc),
		Assignment: assignmentHandler.NewHandler(assignmentSvc),
		Approval:   approvalHandler.NewHandler(approvalSvc),
		Onboarding: onboardingHandler.NewHandler(onboardingSvc),
		Connection: connectionHandler.NewHandler(connectionSvc),
		Hospital:   hospitalHandler.NewHandler(hospitalRepo, auditSvc),
		Fleet:      fleetHandler.NewHandler(fleetRepo, auditSvc),
		User:       userHandler.NewHandler(userSvc),
		Staff:      staffHandler.NewHandler(staffSvc),
		Patient:    patientHandler.NewHandler(patientRepo),
		Device:     deviceHandler.NewHandler(deviceSvc),
		Meeting:    meetingHandler.NewHandler(meetingSvc),
		Audit:      auditHandler.NewHandler(auditSvc),
	}

	r := router.NewRouter(authMiddleware, accessMiddleware, handlers, router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimit),
		RateBurst:  cfg.Server.RateBurst,
		Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	// Outbox worker: events staged by services are published after the
	// fact, so a broker outage never blocks request handling.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	zl := log.Logger
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:    cfg.Worker.OutboxBatchSize,
		PollInterval: time.Duration(cfg.Worker.OutboxIntervalSeconds) * time.Second,
	}, appLogger, appMetrics)
	go processor.Start(workerCtx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited properly")
}
