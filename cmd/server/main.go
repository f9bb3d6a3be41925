package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/fieldsight/device-monitor/docs"
	"github.com/fieldsight/device-monitor/internal/api"
	"github.com/fieldsight/device-monitor/internal/core/service"
	"github.com/fieldsight/device-monitor/internal/infrastructure/config"
	mongodb "github.com/fieldsight/device-monitor/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldsight/device-monitor/internal/infrastructure/db/redis"
	"github.com/fieldsight/device-monitor/internal/infrastructure/mqtt"
	"github.com/fieldsight/device-monitor/internal/infrastructure/queue"
	"github.com/fieldsight/device-monitor/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Device Monitor API
// @version         1.0
// @description     Telemetry ingestion and device-state API for registered consumer devices.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet; write to stderr and bail.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	identityRepo := mongodb.NewIdentityRepository(db)
	deviceRepo := mongodb.NewDeviceRepository(db)
	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("identity indexes")
	}
	if err := deviceRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("device indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	// --- MQTT ingestion pipeline ---
	broker, err := mqtt.Connect(mqtt.Config{
		BrokerURL: cfg.MQTT.BrokerURL,
		ClientID:  cfg.MQTT.ClientID,
		Username:  cfg.MQTT.Username,
		Password:  cfg.MQTT.Password,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("mqtt connect")
	}

	telemetryService := service.NewTelemetryService(identityRepo, deviceRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Workers, telemetryService, log)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	subscriber := mqtt.NewTelemetrySubscriber(broker, cfg.MQTT.Topic, cfg.MQTT.QoS, dispatcher, log)
	if err := subscriber.Start(); err != nil {
		log.Fatal().Err(err).Msg("telemetry subscribe")
	}

	// --- HTTP ---
	e := api.NewRouter(api.RouterOptions{
		Mongo:     db,
		Redis:     rdb,
		Broker:    broker,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("topic", cfg.MQTT.Topic).
		Msg("device monitor started")

	// Block until a shutdown signal, then drain in order: stop accepting
	// HTTP, stop the broker feed, stop the workers, release the stores.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	broker.Close()
	stopWorkers()

	log.Info().Msg("device monitor stopped")
}
