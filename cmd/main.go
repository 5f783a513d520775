package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"sparsefields/internal/config"
	"sparsefields/internal/db"
	"sparsefields/internal/logger"
	"sparsefields/internal/model"
	"sparsefields/internal/router"
)

func main() {
	debugFlag := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	if err := logger.Init("."); err != nil {
		fmt.Fprintf(os.Stderr, "log init failed: %v\n", err)
		os.Exit(1)
	}
	logger.SetDebug(*debugFlag)
	cfg := config.LoadConfig()

	// Initialize registry
	if err := model.InitRegistry(cfg.ModelsDir); err != nil {
		logger.Error("registry_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	logger.Info("models_initialized", map[string]any{"count": len(model.Registry)})

	// Redis is optional: without it field maps are rebuilt per request
	if cfg.Redis.Addr != "" {
		db.InitRedis(cfg.Redis.Addr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingRedis(ctx); err != nil {
			logger.Warn("redis_disabled", map[string]any{"error": err.Error()})
			_ = db.CloseRedis()
		} else {
			model.FieldMapCacheTTL = time.Duration(cfg.Redis.CacheTTLSec) * time.Second
			// модели могли измениться с прошлого запуска
			if err := model.FlushFieldMaps(ctx); err != nil {
				logger.Warn("fieldmap_flush_failed", map[string]any{"error": err.Error()})
			}
			logger.Info("redis_connected", map[string]any{"addr": cfg.Redis.Addr})
		}
		cancel()
	}

	mux := router.InitRoutes(cfg)

	// Start HTTP server
	logger.Info("server_start", map[string]any{"port": cfg.Port})
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		logger.Error("server_error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
