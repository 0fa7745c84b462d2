// cmd/edubot-server/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"edubot/internal/auth"
	"edubot/internal/channels/web"
	"edubot/internal/channels/whatsapp"
	awsclients "edubot/internal/common/aws"
	"edubot/internal/common/config"
	"edubot/internal/common/database"
	httpclient "edubot/internal/common/http"
	"edubot/internal/common/logger"
	"edubot/internal/dialog"
	"edubot/internal/engine"
	"edubot/internal/generative"
	"edubot/internal/notify"
	"edubot/internal/ocr"
	"edubot/internal/store"
	"edubot/internal/verify"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting edubot server...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// --- Init Redis with retry ---
	// The cache is optional at runtime; the store reads through to DynamoDB
	// when it is down. Startup still insists on a reachable cache so a bad
	// address surfaces immediately.
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redis = nil
	} else {
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init AWS Clients ---
	awsCfg, err := awsclients.LoadConfig(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}

	lexClient := awsclients.NewLexClient(awsCfg)
	textractClient := awsclients.NewTextractClient(awsCfg)
	bedrockClient := awsclients.NewBedrockClient(awsCfg)
	dynamoClient := awsclients.NewDynamoClient(awsCfg)
	sesClient := awsclients.NewSESClient(awsCfg)
	snsClient := awsclients.NewSNSClient(awsCfg)
	zapLog.Info("AWS clients initialized", zap.String("region", cfg.AWS.Region))

	// --- Init Services ---
	recordStore := store.New(
		dynamoClient,
		redis,
		cfg.AWS.DynamoDB.UsersTable,
		cfg.AWS.DynamoDB.ApplicationsTable,
		config.GetDuration(cfg.Database.Redis.CacheTTL),
		log,
	)

	if cfg.Server.SeedDemoData {
		if err := recordStore.Seed(ctx); err != nil {
			zapLog.Warn("demo data seeding failed", zap.Error(err))
		}
	}

	dialogClient := dialog.NewClient(
		lexClient,
		cfg.AWS.Lex.BotID,
		cfg.AWS.Lex.BotAliasID,
		cfg.AWS.Lex.LocaleID,
		log,
	)
	genClient := generative.NewClient(
		bedrockClient,
		cfg.AWS.Bedrock.ModelID,
		cfg.AWS.Bedrock.Temperature,
		log,
	)
	pipeline := verify.NewPipeline(ocr.NewClient(textractClient, log), cfg.Verification, log)
	notifier := notify.NewService(sesClient, snsClient, cfg.Notifications, log)
	authService := auth.NewService(recordStore, log)

	router := engine.NewRouter(
		dialogClient,
		genClient,
		recordStore,
		pipeline,
		notifier,
		cfg.Channels,
		log,
	)

	webHandler := web.NewHandler(router, authService, recordStore, log)
	whatsappHandler := whatsapp.NewHandler(
		router,
		httpclient.NewClient(30*time.Second),
		cfg.Integrations,
		log,
	)

	// --- HTTP Server ---
	r := chi.NewRouter()
	r.Mount("/api", webHandler.Routes())
	r.Mount("/webhook/whatsapp", whatsappHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Server stopped gracefully")
}
