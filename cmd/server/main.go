package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/campus-hub/campus-hub/internal/api/http"
	appAttendance "github.com/campus-hub/campus-hub/internal/application/attendance"
	appAuth "github.com/campus-hub/campus-hub/internal/application/auth"
	appEligibility "github.com/campus-hub/campus-hub/internal/application/eligibility"
	appNotification "github.com/campus-hub/campus-hub/internal/application/notification"
	appQRSession "github.com/campus-hub/campus-hub/internal/application/qrsession"
	appReport "github.com/campus-hub/campus-hub/internal/application/report"
	"github.com/campus-hub/campus-hub/internal/config"
	domainQR "github.com/campus-hub/campus-hub/internal/domain/qrsession"
	"github.com/campus-hub/campus-hub/internal/infrastructure/email"
	"github.com/campus-hub/campus-hub/internal/infrastructure/postgres"
	"github.com/campus-hub/campus-hub/internal/infrastructure/prediction"
	"github.com/campus-hub/campus-hub/internal/infrastructure/ratelimit"
	"github.com/campus-hub/campus-hub/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	userRepo := postgres.NewUserRepository(pool)
	studentRepo := postgres.NewStudentRepository(pool)
	teacherRepo := postgres.NewTeacherRepository(pool)
	subjectRepo := postgres.NewSubjectRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()
	defer sseHub.Stop()

	sessionStore := domainQR.NewMemoryStore(cfg.QRSweepEvery)
	defer sessionStore.Stop()

	var sender email.Sender = email.NopSender{}
	if cfg.SendGridAPIKey != "" {
		sender = email.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromAddr)
	}

	var authLimiter, scanLimiter *ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := ratelimit.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis error: %v", err)
		}
		defer redisClient.Close()
		authLimiter = ratelimit.NewLimiter(redisClient, "auth", cfg.AuthRateMax, cfg.AuthRateWindow)
		scanLimiter = ratelimit.NewLimiter(redisClient, "scan", cfg.ScanRateMax, cfg.ScanRateWindow)
	} else {
		// Without redis the limiters fail open.
		authLimiter = ratelimit.NewLimiter(nil, "auth", cfg.AuthRateMax, cfg.AuthRateWindow)
		scanLimiter = ratelimit.NewLimiter(nil, "scan", cfg.ScanRateMax, cfg.ScanRateWindow)
	}

	var forecaster prediction.Forecaster
	if cfg.PredictionURL != "" {
		forecaster = prediction.NewHTTPClient(cfg.PredictionURL)
	}

	// services
	authSvc := appAuth.NewService(userRepo, studentRepo, teacherRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	notificationSvc := appNotification.NewService(notificationRepo, sender, logger)
	attendanceSvc := appAttendance.NewService(attendanceRepo, subjectRepo, studentRepo, teacherRepo, notificationSvc, logger)
	qrSvc := appQRSession.NewService(sessionStore, sseHub, logger)
	eligibilitySvc := appEligibility.NewService(cfg.EligibilityRule, attendanceRepo, studentRepo, subjectRepo, logger)
	reportSvc := appReport.NewService(attendanceSvc, logger)

	// API server
	apiServer := httpapi.NewServer(
		authSvc,
		attendanceSvc,
		qrSvc,
		notificationSvc,
		eligibilitySvc,
		reportSvc,
		forecaster,
		userRepo,
		studentRepo,
		teacherRepo,
		subjectRepo,
		sseHub,
		authLimiter,
		scanLimiter,
		logger,
	)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
