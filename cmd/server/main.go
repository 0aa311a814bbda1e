package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/pagecraft/internal/api"
	"github.com/ignite/pagecraft/internal/config"
	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/pkg/distlock"
	"github.com/ignite/pagecraft/internal/pkg/logger"
	"github.com/ignite/pagecraft/internal/repository/memory"
	"github.com/ignite/pagecraft/internal/repository/postgres"
	"github.com/ignite/pagecraft/internal/service/campaign"
	"github.com/ignite/pagecraft/internal/service/catalog"
	"github.com/ignite/pagecraft/internal/service/generation"
	"github.com/ignite/pagecraft/internal/service/settings"
	"github.com/ignite/pagecraft/internal/service/templates"
	"github.com/ignite/pagecraft/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedact(cfg.Logging.Redact)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Database: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	rdb := connectRedis(ctx, cfg.Redis.URL)
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := storage.New(ctx, cfg.Settings, rdb)
	if err != nil {
		log.Fatalf("Settings store: %v", err)
	}
	logger.Info("settings store ready", "backend", cfg.Settings.Backend)

	// The S3 archive is optional; keep the interfaces untyped-nil without it.
	var (
		archive settings.Archiver
		pinger  api.Pinger
	)
	if cfg.Settings.S3Bucket != "" {
		clients, err := storage.NewAWSClients(ctx, cfg.Settings.AWSRegion)
		if err != nil {
			logger.Warn("brand file archive disabled", "error", err)
		} else {
			a := storage.NewS3Archive(clients.S3, cfg.Settings.S3Bucket)
			archive, pinger = a, a
			logger.Info("brand file archive enabled", "bucket", cfg.Settings.S3Bucket)
		}
	}

	engine := copywriter.NewTemplateEngine()
	rnd := copywriter.NewRand(cfg.Generation.Seed)

	var (
		productRepo  catalog.Repository
		templateRepo templates.Repository
		campaignRepo campaign.Repository
	)
	if db != nil {
		productRepo = postgres.NewProductRepo(db)
		templateRepo = postgres.NewTemplateRepo(db)
		campaignRepo = postgres.NewCampaignRepo(db)
	} else {
		productRepo = memory.NewProductRepo(memory.DemoProducts())
		templateRepo = memory.NewTemplateRepo(memory.DemoTemplates())
		campaignRepo = memory.NewCampaignRepo(memory.DemoCampaigns())
		logger.Info("database not configured, using in-memory demo data")
	}

	guard := generation.NewGuard(distlock.NewFactory(rdb, db, cfg.Generation.LockTTL()))
	genSvc := generation.NewService(
		copywriter.NewComposer(engine, rnd),
		generation.NewStore(),
		guard,
		generation.Options{
			DefaultVariants: cfg.Generation.DefaultVariants,
			MaxVariants:     cfg.Generation.MaxVariants,
			Latency:         cfg.Generation.SimulatedLatency(),
			BulkDelay:       cfg.Generation.BulkDelay(),
		},
	)

	handlers := api.NewHandlers(api.Deps{
		Catalog:    catalog.NewService(productRepo),
		Generation: genSvc,
		Templates:  templates.NewService(templateRepo),
		Campaigns:  campaign.NewService(campaignRepo, engine, rnd),
		Settings:   settings.NewService(store, archive),
		Health:     api.NewHealthChecker(db, rdb, pinger),
	})
	server := api.NewServer(cfg.Server, handlers)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

// openDatabase returns nil when no database URL is configured.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	logger.Info("database connected")
	return db, nil
}

// connectRedis returns nil when Redis is not configured or unreachable;
// generation locks then fall back to Postgres advisory locks or the
// in-process guard.
func connectRedis(ctx context.Context, url string) redis.UniversalClient {
	if url == "" {
		logger.Info("redis not configured")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis connection failed, continuing without it", "error", err)
		client.Close()
		return nil
	}
	logger.Info("redis connected")
	return client
}
