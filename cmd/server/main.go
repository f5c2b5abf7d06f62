package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stridewear/storefront/internal/bootstrap"
	"github.com/stridewear/storefront/internal/config"
	"github.com/stridewear/storefront/internal/events"
	"github.com/stridewear/storefront/internal/httpserver"
	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/repo"
	"github.com/stridewear/storefront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	db, err := config.OpenDB(cfg, log)
	if err != nil {
		log.Error("database_open_failed", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, log); err != nil {
		log.Error("admin_bootstrap_failed", "error", err)
		os.Exit(1)
	}
	if cfg.SeedCatalog {
		if err := bootstrap.SeedCatalog(db, log); err != nil {
			log.Error("catalog_seed_failed", "error", err)
			os.Exit(1)
		}
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	store := repo.New(db)
	srv := httpserver.New(httpserver.Deps{
		Repo:      store,
		Auth:      service.NewAuthService(store, producer, cfg.JWTSecret, cfg.AdminEmail),
		Account:   service.NewAccountService(store),
		Catalog:   service.NewCatalogService(store, producer),
		Orders:    service.NewOrderService(store, producer),
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info("server_starting", "port", cfg.ServerPort)
		if err := srv.Echo.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server_stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Echo.Shutdown(ctx); err != nil {
		log.Error("server_shutdown_failed", "error", err)
	}
	log.Info("server_stopped")
}
