// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samarthbadyal/hoopsim/internal/config"
	"github.com/samarthbadyal/hoopsim/internal/database/database"
	"github.com/samarthbadyal/hoopsim/internal/database/migrate"
	"github.com/samarthbadyal/hoopsim/internal/health"
	matchupRouter "github.com/samarthbadyal/hoopsim/internal/matchup/router"
	"github.com/samarthbadyal/hoopsim/internal/middleware"
	playerRouter "github.com/samarthbadyal/hoopsim/internal/player/router"
	"github.com/samarthbadyal/hoopsim/internal/sim"
	teamRouter "github.com/samarthbadyal/hoopsim/internal/team/router"
	"github.com/samarthbadyal/hoopsim/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		zapLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			zapLogger.Errorw("failed to close database", "error", closeErr)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		zapLogger.Fatalw("failed to apply migrations", "error", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.Logger(zapLogger))
	r.Use(middleware.CORS())

	healthHandler := health.New(db, zapLogger)
	r.GET("/health", healthHandler.Check)

	var generator *sim.Generator
	if cfg.SimSeed != nil {
		generator = sim.New(rand.NewSource(*cfg.SimSeed))
	}

	teamRouter.RegisterRoutes(r, db, zapLogger)
	playerRouter.RegisterRoutes(r, db, zapLogger)
	matchupRouter.RegisterRoutes(r, db, generator, zapLogger)

	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Infow("starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Errorw("server shutdown failed", "error", err)
	}
	zapLogger.Infow("server stopped")
}
