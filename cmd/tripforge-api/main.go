// README: Entry point; loads config, wires the generation pipeline, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripforge/internal/ai"
	"tripforge/internal/config"
	"tripforge/internal/httpapi"
	"tripforge/internal/infra"
	"tripforge/internal/photos"
	"tripforge/internal/planner"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := ai.NewGeminiClient(ctx, cfg.AI.GeminiKey, cfg.AI.Model, logger)
	if err != nil {
		logger.Fatal("gemini init failed", zap.Error(err))
	}
	defer llm.Close()

	photoSource := newPhotoSource(cfg, logger)
	cache := newCache(cfg)

	gen := planner.NewPlanner(llm, photoSource, cache, logger)

	var archive httpapi.Archive
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init failed", zap.Error(err))
		}
		defer pool.Close()

		store := planner.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Warn("archive schema check failed, archiving disabled", zap.Error(err))
		} else {
			archive = store
		}
	}

	server := httpapi.NewServer(gen, archive, logger, cfg.Gen.Timeout)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.Router(cfg.HTTP.AllowedOrigins),
	}

	go func() {
		logger.Info("tripforge api listening", zap.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newPhotoSource(cfg config.Config, logger *zap.Logger) photos.Source {
	switch cfg.Photos.Provider {
	case "places":
		src, err := photos.NewPlacesSource(cfg.Photos.MapsKey)
		if err != nil {
			logger.Warn("places photo source init failed, images disabled", zap.Error(err))
			return nil
		}
		return src
	case "none":
		return nil
	default:
		if cfg.Photos.UnsplashKey == "" {
			logger.Warn("UNSPLASH_ACCESS_KEY not set, destination images will use the default asset")
			return nil
		}
		return photos.NewUnsplashSource(cfg.Photos.UnsplashKey)
	}
}

func newCache(cfg config.Config) planner.Cache {
	if cfg.Cache.Backend == "redis" {
		return planner.NewRedisCache(infra.NewRedis(cfg.Redis.Addr), cfg.Cache.TTL)
	}
	return planner.NewMemoryCache(cfg.Cache.TTL)
}
