// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"commerce-nlu/internal/common/aws"
	"commerce-nlu/internal/common/cache"
	"commerce-nlu/internal/common/camunda"
	"commerce-nlu/internal/common/catalog"
	"commerce-nlu/internal/common/config"
	"commerce-nlu/internal/common/database"
	apperrors "commerce-nlu/internal/common/errors"
	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/common/observability"
	"commerce-nlu/internal/nlu/pipeline"
	pc "commerce-nlu/internal/workers/nlu/parse-command"
	"commerce-nlu/pkg/registry"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, strings.Split(cfg.Logging.Output, ",")...)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Activity registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("registry load failed", zap.Error(apperrors.NewRegistryLoadError(cfg.Registry.Path, err)))
	}
	activity, ok := reg.FindByTaskType(pc.TaskType)
	if !ok {
		zapLog.Fatal("registry has no activity for task type", zap.String("taskType", pc.TaskType))
	}
	if !activity.Implemented() {
		zapLog.Warn("activity is not marked implemented in the registry",
			zap.String("taskType", pc.TaskType),
			zap.String("status", activity.ImplementationStatus),
		)
	}

	// --- Catalog stores, only when a catalog source needs them ---
	health := database.NewHealth(2 * time.Second)
	var pg *database.PostgresClient
	var esClient *database.ElasticsearchClient
	for _, source := range cfg.Catalog.Sources {
		switch source {
		case "postgres":
			err = retryWithBackoff(func() error {
				var err error
				pg, err = database.NewPostgres(cfg.Database.Postgres)
				if err != nil {
					return err
				}
				return pg.Ping(ctx)
			}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
			if err != nil {
				zapLog.Fatal("postgres failed after retries", zap.Error(err))
			}
			defer pg.Close()
			health.Register("postgres", pg, false)
			zapLog.Info("PostgreSQL connected successfully", zap.String("target", pg.Target()))

		case "elasticsearch":
			err = retryWithBackoff(func() error {
				var err error
				esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
				if err != nil {
					return err
				}
				return esClient.Ping(ctx)
			}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
			if err != nil {
				zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
			}
			health.Register("elasticsearch", esClient, false)
			zapLog.Info("Elasticsearch connected successfully", zap.String("target", esClient.Target()))
		}
	}

	var db *sql.DB
	if pg != nil {
		db = pg.DB
	}
	var es *elasticsearch.Client
	if esClient != nil {
		es = esClient.Client
	}
	sources, err := catalog.SourcesFromConfig(cfg.Catalog, db, es)
	if err != nil {
		zapLog.Fatal("catalog configuration invalid", zap.Error(err))
	}
	lex, err := catalog.NewLoader(sources, cfg.Catalog.Strict, config.GetDuration(cfg.Catalog.Timeout), log).Lexicon(ctx)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	parser := pipeline.New(lex, cfg.NLU.PipelineOptions(), log)
	zapLog.Info("Parser ready", zap.Int("products", len(lex.Products)))

	// --- Parse cache ---
	deps := pc.Dependencies{Parser: parser, Observability: obs}
	if cfg.Cache.Enabled {
		var rdb *redis.Client
		if cfg.Cache.UseRedis {
			rc := database.NewRedis(cfg.Database.Redis)
			if err := retryWithBackoff(func() error { return rc.Ping(ctx) }, 5, 2*time.Second, zapLog, "Redis connection"); err != nil {
				zapLog.Warn("redis unavailable, caching in process only",
					zap.Error(apperrors.NewCacheUnavailableError(err)))
				_ = rc.Close()
			} else {
				defer rc.Close()
				rdb = rc.Client
				health.Register("redis", rc, false)
				zapLog.Info("Redis connected successfully", zap.String("target", rc.Target()))
			}
		}
		parseCache, err := cache.New(cfg.Cache.TTLDuration(), cfg.Cache.L1MaxCost, rdb, log)
		if err != nil {
			zapLog.Fatal("parse cache init failed", zap.Error(err))
		}
		defer parseCache.Close()
		deps.Cache = parseCache
	}

	// --- Feedback topic ---
	if cfg.Feedback.Enabled {
		publisher, err := aws.NewFeedbackPublisher(ctx, cfg.Feedback.Region, cfg.Feedback.TopicARN)
		if err != nil {
			zapLog.Fatal("feedback publisher init failed", zap.Error(err))
		}
		deps.Feedback = publisher
	}

	// --- Zeebe ---
	zeebeClient, err := camunda.Connect(ctx, camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	wcfg := config.GetWorkerConfig(cfg, pc.TaskType)
	handler, err := pc.NewHandler(&pc.Config{
		Timeout:         activity.TimeoutDuration(pc.LoadConfig().Timeout),
		InputSchema:     activity.InputSchema,
		FeedbackIntents: []string{"unknown"},
	}, deps, &parseCommandLoggerAdapter{log})
	if err != nil {
		zapLog.Fatal("failed to create parse-command handler", zap.Error(err))
	}
	jobWorker := camunda.StartWorker(zeebeClient, pc.TaskType, wcfg, handler.Handle, log)

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeStatus(w, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		stores, storesReady := health.Check(r.Context())
		status := "ready"
		switch {
		case jobWorker == nil:
			status = "worker disabled"
		case !storesReady:
			status = "store unavailable"
		}
		if status != "ready" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"stores": stores,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", cfg.Metrics.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if jobWorker != nil {
		jobWorker.Close()
		jobWorker.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, status string) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// parseCommandLoggerAdapter narrows logger.Logger to the worker's own
// Logger interface.
type parseCommandLoggerAdapter struct {
	logger.Logger
}

func (a *parseCommandLoggerAdapter) With(fields map[string]interface{}) pc.Logger {
	return &parseCommandLoggerAdapter{a.Logger.With(fields)}
}
