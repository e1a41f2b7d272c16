package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/api"
	"equipment-maintenance-backend/internal/cache"
	"equipment-maintenance-backend/internal/db"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/notification"
	"equipment-maintenance-backend/internal/recorder"
	"equipment-maintenance-backend/internal/remote"
	"equipment-maintenance-backend/internal/schedule"
	"equipment-maintenance-backend/internal/store"
	"equipment-maintenance-backend/internal/syncer"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "maintenance-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Initialize the remote store connection
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize remote store: %v", err)
	}
	remoteStore := remote.NewGormStore(gormDB)

	// Open the durable local cache
	localCache, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		logger.Fatalf("failed to open local cache at %s: %v", cfg.Cache.Path, err)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The sync manager persists local-first and mirrors to the remote
	// store in the background.
	syncManager := syncer.NewManager(localCache, remoteStore, cfg.Sync.RetryAttempts, cfg.Sync.RetryBackoff, logger)
	go syncManager.Run(ctx)

	// Seed the entity store: remote, cache, or empty.
	entityStore := store.New(syncManager)
	machines, source := syncManager.Load(ctx)
	entityStore.Seed(machines)
	logger.Printf("entity store seeded with %d machines from %s", len(machines), source)

	// Wire the recorder with the schedule policy from config. Machines
	// read without a schedule for some of their equipment get the
	// defaults attached on first read.
	engine := schedule.NewEngine(cfg.Maintenance.Overrides())
	entityStore.SetScheduleBootstrap(func(m *model.Machine) error {
		return engine.BootstrapSchedules(m, time.Now())
	})
	rec := recorder.New(entityStore, engine)

	// Notification worker pool for newly due tasks.
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
	workerPool.Start(ctx)
	rec.SetNotifier(workerPool.Dispatch)

	// Initialize router
	router := api.NewRouter(
		api.NewHandler(entityStore, rec, gormDB, &webpushOptions),
		cfg.Server.RateLimitPerSec,
		time.Duration(cfg.Server.CacheTTLSeconds)*time.Second,
		cfg.Server.RequestIPHeader,
	)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
