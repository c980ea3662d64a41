package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Verisomusic/BeatMatch/internal/adapters/dsp"
	"github.com/Verisomusic/BeatMatch/internal/adapters/rest"
	"github.com/Verisomusic/BeatMatch/internal/adapters/spotify"
	"github.com/Verisomusic/BeatMatch/internal/core/ports"
	"github.com/Verisomusic/BeatMatch/internal/core/services"
)

const defaultMaxUploadBytes = 32 << 20

func main() {
	// Local development convenience; in deployment the environment is the
	// only configuration source.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Catalog credentials are optional: without them every recommendation
	// comes from the curated fallback table.
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")

	var catalog ports.CatalogProvider
	if clientID != "" && clientSecret != "" {
		catalog = spotify.NewClient(clientID, clientSecret, log)
	} else {
		log.Warn("SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET not set; label recommendations use the static fallback list")
	}

	recommender := services.NewRecommender(catalog, durationEnv("CATALOG_TIMEOUT", 4*time.Second), log)
	svc := services.NewOrchestrator(dsp.NewExtractor(), recommender, log)
	handler := rest.NewHandler(svc, log, catalog != nil, int64Env("MAX_UPLOAD_BYTES", defaultMaxUploadBytes))

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	log.Info("beatmatch api listening", zap.String("addr", addr), zap.Bool("catalog_configured", catalog != nil))

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func int64Env(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
