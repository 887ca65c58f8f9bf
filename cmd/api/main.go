package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/kasayonetim/kasa/internal/config"
	"github.com/kasayonetim/kasa/internal/database"
	"github.com/kasayonetim/kasa/internal/export"
	kasaHttp "github.com/kasayonetim/kasa/internal/http"
	authHandler "github.com/kasayonetim/kasa/internal/http/auth"
	dashboardHandler "github.com/kasayonetim/kasa/internal/http/dashboard"
	notificationHandler "github.com/kasayonetim/kasa/internal/http/notification"
	regionHandler "github.com/kasayonetim/kasa/internal/http/region"
	txHandler "github.com/kasayonetim/kasa/internal/http/transaction"
	userHandler "github.com/kasayonetim/kasa/internal/http/user"
	"github.com/kasayonetim/kasa/internal/notification"
	notificationStore "github.com/kasayonetim/kasa/internal/notification/store"
	platformAuth "github.com/kasayonetim/kasa/internal/platform/auth"
	platformStorage "github.com/kasayonetim/kasa/internal/platform/storage"
	profileStore "github.com/kasayonetim/kasa/internal/profile/store"
	"github.com/kasayonetim/kasa/internal/realtime"
	"github.com/kasayonetim/kasa/internal/region"
	regionStore "github.com/kasayonetim/kasa/internal/region/store"
	"github.com/kasayonetim/kasa/internal/transaction"
	txStore "github.com/kasayonetim/kasa/internal/transaction/store"
	"github.com/kasayonetim/kasa/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.App.LogLevel)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	listener := realtime.NewListener(cfg.ConnectionString())

	var (
		authClient    = platformAuth.NewClient(cfg.Platform.URL, cfg.Platform.AnonKey)
		authAdmin     = platformAuth.NewAdminClient(cfg.Platform.URL, cfg.Platform.ServiceKey)
		storageClient = platformStorage.NewClient(cfg.Platform.URL, cfg.Platform.AnonKey, cfg.Storage.Bucket)
	)

	var (
		profiles            = profileStore.New(db)
		transactionService  = transaction.NewService(txStore.New(db))
		regionService       = region.NewService(regionStore.New(db))
		notificationService = notification.NewService(notificationStore.New(db))
		userService         = user.NewService(authAdmin, profiles)
		exportService       = export.NewService()
	)

	var (
		authH          = authHandler.NewHandler(authClient, cfg.App.WebOrigin)
		transactionsH  = txHandler.NewHandler(transactionService, regionService, exportService, listener, storageClient, cfg.Storage.MaxUploadBytes)
		regionsH       = regionHandler.NewHandler(regionService)
		notificationsH = notificationHandler.NewHandler(notificationService)
		usersH         = userHandler.NewHandler(userService)
		dashboardH     = dashboardHandler.NewHandler(transactionService, regionService)
	)

	router := kasaHttp.New(kasaHttp.RouterConfig{
		JWTSecret: cfg.Platform.JWTSecret,
		WebOrigin: cfg.App.WebOrigin,
		Profiles:  profiles,
	}, authH, transactionsH, regionsH, notificationsH, usersH, dashboardH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		return listener.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
