package main

// @title Industry Catalog API
// @version 1.0
// @description Catalog of industries with search, filters and sector/country lookups.
// @BasePath /api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/jordanlanch/industrycatalog/config"
	apierrors "github.com/jordanlanch/industrycatalog/pkg/api/errors"
	"github.com/jordanlanch/industrycatalog/pkg/cache"
	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/jordanlanch/industrycatalog/pkg/export"
	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/jordanlanch/industrycatalog/pkg/jobs"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/metrics"
	custommiddleware "github.com/jordanlanch/industrycatalog/pkg/middleware"
	"github.com/jordanlanch/industrycatalog/pkg/secrets"
	"github.com/jordanlanch/industrycatalog/pkg/snapshot"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// A missing .env is fine, the environment alone is enough
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	apierrors.SetLogger(log)
	log.Info("configuration loaded", "environment", cfg.APIEnvironment)

	if cfg.SecretsBackend != secrets.BackendEnv {
		loadSecrets(cfg, log)
	}

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 0.2,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("failed to initialize sentry", "error", err)
		} else {
			log.Info("sentry initialized", "environment", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Connect once. Failure leaves the API serving the fallback dataset.
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	store := database.Connect(connectCtx, database.Options{
		URI:      cfg.MongoURI,
		Database: cfg.DBName,
		Timeout:  cfg.MongoConnectTimeout,

		ReadPreference: cfg.MongoReadPreference,
	}, log)
	cancelConnect()

	// Redis is optional
	var redisClient *cache.Client
	if cfg.RedisURL != "" {
		rc, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", "error", err)
		} else {
			redisClient = rc
			log.Info("redis cache connected")
		}
	}

	prometheusMetrics := metrics.New()
	prometheusMetrics.SetStoreConnected(store.Connected())

	opts := []industries.Option{
		industries.WithLogger(log),
		industries.WithMetrics(prometheusMetrics),
		industries.WithPaginateFallback(cfg.PaginateFallback),
	}
	if redisClient != nil {
		opts = append(opts, industries.WithCache(redisClient))
	}
	industryService := industries.NewService(store, opts...)
	catalogService := industries.NewCatalogService(store, opts...)

	rateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Close()

	e := newServer(serverDeps{
		cfg:         cfg,
		log:         log,
		store:       store,
		cache:       redisClient,
		metrics:     prometheusMetrics,
		gatherer:    prometheus.DefaultGatherer,
		rateLimiter: rateLimiter,
		industries:  industryService,
		catalog:     catalogService,
	})

	// Catalog sync only makes sense against a live store
	cronManager := jobs.NewCronManager(catalogService, log)
	if store.Connected() {
		if err := cronManager.SetupJobs(cfg.CatalogSyncSchedule); err != nil {
			log.Error("failed to set up cron jobs", "error", err)
			os.Exit(1)
		}
		if snapshots := newSnapshotService(cfg, industryService, log); snapshots != nil {
			if err := cronManager.SetupSnapshotJob(cfg.SnapshotSchedule, snapshots); err != nil {
				log.Error("failed to set up snapshot job", "error", err)
				os.Exit(1)
			}
		}
		cronManager.Start()
	}

	address := cfg.Address()
	log.Info("industry catalog API starting",
		"address", address,
		"database", store.Connected(),
		"cache", redisClient != nil,
		"rate_limit_per_minute", cfg.RateLimitRequestsPerMinute,
	)

	go func() {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Let a running sync finish within the shutdown budget
	select {
	case <-cronManager.Stop().Done():
	case <-ctx.Done():
	}

	if err := e.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := store.Close(ctx); err != nil {
		log.Warn("failed to close document store", "error", err)
	}

	log.Info("server gracefully stopped")
}

// loadSecrets replaces connection strings with values from the secrets backend
func loadSecrets(cfg *config.Config, log logger.Logger) {
	manager, err := secrets.NewManager(secrets.Config{
		Backend:   cfg.SecretsBackend,
		AWSRegion: cfg.AWSRegion,
		Prefix:    cfg.SecretsPrefix,
	})
	if err != nil {
		log.Warn("secrets backend unavailable, using environment", "backend", cfg.SecretsBackend, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = secrets.Resolve(ctx, manager, map[string]*string{
		"MONGO_URI":  &cfg.MongoURI,
		"REDIS_URL":  &cfg.RedisURL,
		"SENTRY_DSN": &cfg.SentryDSN,
	}, log)
	if err != nil {
		log.Warn("some secrets could not be loaded", "error", err)
	}
}

// newSnapshotService returns nil when snapshots are not configured
func newSnapshotService(cfg *config.Config, source snapshot.Source, log logger.Logger) *snapshot.Service {
	if cfg.SnapshotBucket == "" {
		return nil
	}

	format, err := export.ParseFormat(cfg.SnapshotFormat)
	if err != nil {
		log.Warn("invalid snapshot format, using csv", "format", cfg.SnapshotFormat)
		format = export.FormatCSV
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := snapshot.NewS3Client(ctx, snapshot.S3Config{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		log.Warn("snapshots disabled", "error", err)
		return nil
	}

	svc, err := snapshot.NewService(client, source, snapshot.Config{
		Bucket:        cfg.SnapshotBucket,
		Prefix:        cfg.SnapshotPrefix,
		Format:        format,
		RetentionDays: cfg.SnapshotRetentionDays,
	}, log)
	if err != nil {
		log.Warn("snapshots disabled", "error", err)
		return nil
	}
	return svc
}
