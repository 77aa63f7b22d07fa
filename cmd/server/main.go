package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caresync/patient-records/internal/api"
	"github.com/caresync/patient-records/internal/core/service"
	"github.com/caresync/patient-records/internal/infrastructure/config"
	mongodb "github.com/caresync/patient-records/internal/infrastructure/db/mongo"
	redisdb "github.com/caresync/patient-records/internal/infrastructure/db/redis"
	"github.com/caresync/patient-records/internal/infrastructure/llm"
	"github.com/caresync/patient-records/internal/infrastructure/queue"
	"github.com/caresync/patient-records/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	patientRepo := mongodb.NewPatientRepository(db)
	reminderRepo := mongodb.NewReminderRepository(db)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)

	reminderService := service.NewReminderService(reminderRepo, redisdb.NewReminderDedup(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.ReminderWorkers, reminderService, log)
	dispatcher.Start(ctx)

	patientService := service.NewPatientService(patientRepo, dispatcher, log)

	generator := llm.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	summaryService := service.NewSummaryService(
		patientRepo,
		generator,
		redisdb.NewSummaryCache(rdb, cfg.SummaryCacheTTL),
		log,
	)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		PatientService: patientService,
		SummaryService: summaryService,
		Tokens:         tokens,
		Mongo:          db,
		Redis:          rdb,
		PublicReads:    cfg.PublicReads,
		Logger:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
