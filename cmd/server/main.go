// Package main runs the ChordLine API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chordline/backend/internal/app"
	"github.com/chordline/backend/internal/config"
	"github.com/chordline/backend/internal/httpapi"
	"github.com/chordline/backend/internal/storage/postgres"
	"github.com/chordline/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("server", logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	stores := app.Stores{}
	if cfg.Database.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		db, err := postgres.Open(ctx, cfg.Database.URL)
		cancel()
		if err != nil {
			log.WithError(err).Error("database connection failed")
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.Migrate(db.DB); err != nil {
			log.WithError(err).Error("migrations failed")
			os.Exit(1)
		}

		store := postgres.New(db)
		stores = app.Stores{
			Bands:         store,
			Venues:        store,
			Events:        store,
			Setlists:      store,
			SongIdeas:     store,
			Earnings:      store,
			Notifications: store,
			Users:         store,
		}
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory storage")
	}

	application := app.New(stores, log)

	handler := httpapi.NewHandler(application, httpapi.Options{
		Auth:      httpapi.NewAuthenticator(cfg.Auth.JWTSecret, log),
		CORS:      httpapi.NewCORS(cfg.CORS.AllowedOrigins),
		RateLimit: httpapi.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
