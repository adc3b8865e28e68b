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

	"github.com/meetly/planner-api/internal/config"
	"github.com/meetly/planner-api/internal/email"
	"github.com/meetly/planner-api/internal/handler"
	meetingHandler "github.com/meetly/planner-api/internal/handler/meeting"
	memberHandler "github.com/meetly/planner-api/internal/handler/member"
	patientHandler "github.com/meetly/planner-api/internal/handler/patient"
	teamHandler "github.com/meetly/planner-api/internal/handler/team"
	"github.com/meetly/planner-api/internal/middleware"
	"github.com/meetly/planner-api/internal/repository/memory"
	"github.com/meetly/planner-api/internal/router"
	meetingService "github.com/meetly/planner-api/internal/service/meeting"
	memberService "github.com/meetly/planner-api/internal/service/member"
	patientService "github.com/meetly/planner-api/internal/service/patient"
	teamService "github.com/meetly/planner-api/internal/service/team"
	"github.com/meetly/planner-api/pkg/logger"
	"github.com/meetly/planner-api/pkg/messaging/redis"
	"github.com/meetly/planner-api/pkg/metrics"
	"github.com/meetly/planner-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.New("planner")

	// Initialize storage
	store := memory.NewStore()
	teamRepo := memory.NewTeamRepository(store)
	memberRepo := memory.NewMemberRepository(store)
	meetingRepo := memory.NewMeetingRepository(store)
	patientRepo := memory.NewPatientDetailRepository(store)
	attachmentRepo := memory.NewAttachmentRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)

	// Invitation delivery is opt-in and requires a complete SMTP block.
	mailer := email.NewDisabledMailer()
	if cfg.Email.Enabled {
		if err := cfg.ValidateSMTP(); err != nil {
			log.Fatal().Err(err).Msg("email sending enabled but SMTP is not configured")
		}
		mailer = email.NewSMTPMailer(cfg.SMTP, cfg.Email.BaseURL, appMetrics)
		appLogger.Info("invitation emails enabled", "smtp_host", cfg.SMTP.Host)
	}

	// Initialize services
	teamSvc := teamService.NewService(teamRepo)
	memberSvc := memberService.NewService(memberRepo, teamRepo)
	meetingSvc := meetingService.NewService(meetingRepo, patientRepo, attachmentRepo, mailer)
	patientSvc := patientService.NewService(patientRepo, meetingRepo, attachmentRepo)

	// Initialize handlers
	h := handler.NewHandler(appMetrics.Registry())
	teamH := teamHandler.NewHandler(teamSvc, outboxRepo)
	memberH := memberHandler.NewHandler(memberSvc, outboxRepo)
	meetingH := meetingHandler.NewHandler(meetingSvc, outboxRepo)
	patientH := patientHandler.NewHandler(patientSvc, outboxRepo)

	r := router.NewRouter(teamH, memberH, meetingH, patientH, h, router.RouterConfig{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "planner",
		Registry:       appMetrics.Registry(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Drain entity lifecycle events to Redis when a broker is configured.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Redis.Enabled {
		broker, err := redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
		}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(
			outboxRepo,
			broker,
			worker.DefaultOutboxProcessorConfig(),
			appLogger.WithComponent("outbox"),
			appMetrics,
		)
		go processor.Start(workerCtx)
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
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
