//	@title			Shaadi Nation Gallery API
//	@version		1.0
//	@description	Gallery API for the Shaadi Nation wedding site — lists, serves, uploads, and deletes photos held in an S3-compatible bucket.
//
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Firebase ID token. Format: **Bearer {token}**

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaadination/gallery-api/internal/api"
	"github.com/shaadination/gallery-api/internal/auth"
	"github.com/shaadination/gallery-api/internal/config"
	"github.com/shaadination/gallery-api/internal/gallery"
	"github.com/shaadination/gallery-api/internal/storage"

	_ "github.com/shaadination/gallery-api/docs/swagger"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		slog.Error("object storage init failed", "error", err)
		os.Exit(1)
	}

	// The key-set cache is injected rather than global so tests can seed it.
	keys := auth.NewKeySet(cfg.FirebaseCertsURL)
	verifier := auth.NewVerifier(cfg.FirebaseProjectID, keys)

	galleryHandler := gallery.NewHandler(gallery.NewService(store))
	authHandler := auth.NewHandler(verifier)

	router := api.NewRouter(cfg.AllowedOrigins, galleryHandler, authHandler, verifier)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
