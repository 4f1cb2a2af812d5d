package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/placement-scheduler/internal/application"
	"github.com/example/placement-scheduler/internal/config"
	httptransport "github.com/example/placement-scheduler/internal/http"
	"github.com/example/placement-scheduler/internal/notify"
	"github.com/example/placement-scheduler/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	operatorStore := sqlite.NewOperatorRepository(pool)
	sessionStore := sqlite.NewSessionRepository(pool)
	roomStore := sqlite.NewRoomRepository(pool)
	participantStore := sqlite.NewParticipantRepository(pool)
	scheduleStore := sqlite.NewScheduleRepository(pool)

	operatorRepo := newOperatorRepositoryAdapter(operatorStore)
	credentialStore := newCredentialStoreAdapter(operatorStore)
	sessionRepo := newSessionRepositoryAdapter(sessionStore)
	roomRepo := newRoomRepositoryAdapter(roomStore)
	participantRepo := newParticipantRepositoryAdapter(participantStore)
	scheduleAdapter := newScheduleAdapter(scheduleStore)

	var mailer application.Mailer = notify.DisabledMailer{}
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Sender:   cfg.SMTPSender,
		}, logger)
	}

	authService := application.NewAuthServiceWithLogger(credentialStore, sessionRepo, nil, tokenGenerator, now, cfg.SessionTTL, logger)
	operatorService := application.NewOperatorService(operatorRepo, nil, idGenerator, now)
	roomService := application.NewRoomServiceWithLogger(roomRepo, idGenerator, now, logger)
	participantService := application.NewParticipantServiceWithLogger(participantRepo, idGenerator, now, logger)
	generationService := application.NewGenerationServiceWithLogger(roomRepo, participantRepo, scheduleAdapter, idGenerator, now, logger)
	scheduleService := application.NewScheduleServiceWithLogger(scheduleAdapter, logger)
	exportService := application.NewExportServiceWithLogger(scheduleAdapter, participantRepo, logger)
	notificationService := application.NewNotificationServiceWithLogger(scheduleAdapter, participantRepo, mailer, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, logger),
		Rooms:        httptransport.NewRoomHandler(roomService, logger),
		Participants: httptransport.NewParticipantHandler(participantService, logger),
		Generations:  httptransport.NewGenerationHandler(generationService, cfg.PlacementPolicy, logger),
		Schedules:    httptransport.NewScheduleHandler(scheduleService, exportService, notificationService, logger),
		Operators:    httptransport.NewOperatorHandler(operatorService, logger),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.URL.Path, "/login") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("placement API listening", "addr", server.Addr, "policy", cfg.PlacementPolicy)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
