package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/api"
	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	level, _ := configs.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs)
	if configs.DBAutoMigrate {
		if err = postgres.Migrate(gormDB); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close application", "error", closeErr)
		}
	}()

	doc, err := api.Load(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}
	api.RegisterSwagger(doc)

	e, err := app.CreateRouter(doc)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("%v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, e, configs.HTTPPort, logger)
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm failed: %v", err)
	}
	return db
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) {
	go func() {
		logger.Info("http server started", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
		return
	}
	logger.Info("http server stopped")
}
