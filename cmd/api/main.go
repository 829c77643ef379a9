// Moodstream API
//
// REST API for ambient mood orchestration driven by wearable biometrics.
//
//	@title			Moodstream API
//	@version		1.0
//	@description	Scores live wearable samples, keeps a daily slot timeline, and schedules ambient mood segments.
//
//	@BasePath	/v1
//
//	@tag.name			daily-slots
//	@tag.description	Daily 10-minute slot timeline endpoints
//
//	@tag.name			scores
//	@tag.description	Sleep score and live metrics endpoints
//
//	@tag.name			samples
//	@tag.description	Biometric sample history endpoints
//
//	@tag.name			mood-segments
//	@tag.description	Ambient mood segment queue endpoints
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftwell/moodstream/internal/api"
	"github.com/driftwell/moodstream/internal/api/handler"
	"github.com/driftwell/moodstream/internal/config"
	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/ingest"
	"github.com/driftwell/moodstream/internal/langfuse"
	"github.com/driftwell/moodstream/internal/llm"
	"github.com/driftwell/moodstream/internal/repository"
	"github.com/driftwell/moodstream/internal/scheduler"
	"github.com/driftwell/moodstream/internal/seed"
	"github.com/driftwell/moodstream/internal/service"
	"github.com/driftwell/moodstream/internal/stream"
	"github.com/driftwell/moodstream/internal/telemetry"
	"github.com/driftwell/moodstream/internal/weather"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Telemetry (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "moodstream-api")
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.BiometricSample{}, &domain.DailySlot{}); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migration completed")

	if cfg.Seed {
		logger.Info("Seeding database with sample data (SEED=true)")
		if err := seed.Run(db); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
		logger.Info("Seed completed")
	}

	// Initialize repositories
	sampleRepo := repository.NewSampleRepository(db)
	slotRepo := repository.NewDailySlotRepository(db)

	// Live metrics cache fed by the sample listener
	cache := ingest.NewMetricsCache()

	// Weather client (nil means always-neutral conditions)
	weatherClient := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherLat, cfg.WeatherLon, logger)

	// Langfuse tracing client and mood prompt
	tracer := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}, logger)
	systemPrompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:    cfg.LangfuseBaseURL,
		PublicKey:  cfg.LangfusePublicKey,
		SecretKey:  cfg.LangfuseSecretKey,
		PromptName: "mood-segments",
		SavePath:   "prompts/mood-segments.txt",
	}, logger)
	if err != nil {
		logger.Info("No managed mood prompt available, using built-in default")
		systemPrompt = ""
	}

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIMoodGenModel, systemPrompt, scheduler.DefaultSegmentDuration, cache, weatherClient, tracer)
	if openaiClient == nil {
		logger.Warn("OpenAI API key not configured, mood segment generation will be unavailable")
	}

	// Mood segment scheduler
	sched := scheduler.NewScheduler(openaiClient.GenerateSegments, logger)
	go sched.Run(ctx, time.Minute)

	// Sample listener over MQTT (skipped when no broker is configured)
	var listener *ingest.Listener
	if cfg.MQTTBrokerURL != "" {
		deviceUser, err := uuid.Parse(cfg.DeviceUserID)
		if err != nil {
			logger.Fatal("DEVICE_USER_ID must be a valid UUID when MQTT is configured", zap.Error(err))
		}

		source := stream.NewMQTTSource(stream.MQTTConfig{
			Broker:   cfg.MQTTBrokerURL,
			ClientID: cfg.MQTTClientID,
			Username: cfg.MQTTUsername,
			Password: cfg.MQTTPassword,
			Topic:    cfg.MQTTTopic,
		}, logger)

		store := repository.NewListenerStore(sampleRepo, deviceUser)
		listener = ingest.NewListener(source, cache, store, logger)
		listener.Start(ctx)
		defer listener.Stop()
	} else {
		logger.Warn("MQTT broker not configured, live sample ingestion disabled")
	}

	// Initialize services
	dailyScoreService := service.NewDailyScoreService(sampleRepo)
	slotService := service.NewSlotService(slotRepo, cache, weatherClient)

	// Keep the device user's current slot filled from the live stream.
	if listener != nil {
		deviceUser, _ := uuid.Parse(cfg.DeviceUserID)
		go refreshSlots(ctx, slotService, deviceUser, logger)
	}

	// Initialize handlers
	slotHandler := handler.NewSlotHandler(slotService)
	scoreHandler := handler.NewScoreHandler(dailyScoreService, cache)
	sampleHandler := handler.NewSampleHandler(sampleRepo)
	segmentHandler := handler.NewSegmentHandler(sched)

	// Setup router
	router := api.NewRouter(slotHandler, scoreHandler, sampleHandler, segmentHandler, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Setup(),
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// refreshSlots upserts the slot covering now once per slot width so the
// daily timeline tracks the live metrics as the day progresses.
func refreshSlots(ctx context.Context, slots service.SlotService, userID uuid.UUID, logger *zap.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := slots.Refresh(ctx, userID, time.Now().UTC()); err != nil {
				logger.Warn("slot refresh failed", zap.Error(err))
			}
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
