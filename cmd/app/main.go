//go:generate swag init -g main.go -d ./,../../internal/handler -o ../../docs

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/PackBattle_Go/internal/battle"
	"github.com/osse101/PackBattle_Go/internal/bootstrap"
	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/database"
	"github.com/osse101/PackBattle_Go/internal/handler"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/metrics"
	"github.com/osse101/PackBattle_Go/internal/server"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// @title PackBattle API
// @version 1.0
// @description Pack battles: open trading-card packs against other players and bots, winner takes the pot.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "packbattle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Version == config.DefaultVersion {
		cfg.Version = handler.CurrentVersion()
	}
	bootstrap.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	catalogSvc := catalog.NewService(repos.Catalog, catalog.CacheConfig{
		Size: cfg.CatalogCacheSize,
		TTL:  cfg.CatalogCacheTTL,
	})

	if cfg.CatalogSeedPath != "" {
		seed, err := bootstrap.LoadBoxesConfig(cfg.CatalogSeedPath)
		if err != nil {
			dbPool.Close()
			return err
		}
		if _, err := bootstrap.SyncCatalog(ctx, seed, catalogSvc, nil); err != nil {
			dbPool.Close()
			return err
		}
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}
	hub, err := bootstrap.RegisterEventHandlers(eventBus)
	if err != nil {
		dbPool.Close()
		return err
	}

	battleSvc := battle.NewService(repos.Battle, catalogSvc, publisher, utils.NewCryptoSource(), battle.Config{
		Retry: battle.RetryPolicy{
			Attempts: cfg.LookupRetryAttempts,
			Delay:    cfg.LookupRetryDelay,
		},
		Recorder: metrics.NewBattleRecorder(),
	})

	workers := bootstrap.StartLobbyExpiry(cfg, battleSvc)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		DBPool:         dbPool,
		BattleService:  battleSvc,
		CatalogService: catalogSvc,
		EventHub:       hub,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed", "error", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Streams:   hub,
		Server:    srv,
		Workers:   workers,
		Publisher: publisher,
		DBPool:    dbPool,
	})
	return nil
}
