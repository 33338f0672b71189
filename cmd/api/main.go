package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HtetLinMaung/pytrueface/internal/api"
	"github.com/HtetLinMaung/pytrueface/internal/blob"
	"github.com/HtetLinMaung/pytrueface/internal/config"
	"github.com/HtetLinMaung/pytrueface/internal/database"
	"github.com/HtetLinMaung/pytrueface/internal/face"
	"github.com/HtetLinMaung/pytrueface/internal/knownset"
	"github.com/HtetLinMaung/pytrueface/internal/match"
	"github.com/HtetLinMaung/pytrueface/internal/repository"
	"github.com/HtetLinMaung/pytrueface/internal/service"
	"github.com/HtetLinMaung/pytrueface/internal/store"
)

const knownSetFetchTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting PyTrueFace API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("extractor", cfg.ExtractorType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Blob store for encoding files
	blobs, err := blob.NewStore(cfg.EncodingsDir)
	if err != nil {
		return fmt.Errorf("failed to open encodings dir: %w", err)
	}

	faceRepo := repository.NewFaceRepository(pool)

	// The migration declares the vector column with a fixed dimension; a
	// mismatch with EMBEDDING_DIM would fail every enrollment, so refuse
	// to start instead.
	if schemaDim, err := faceRepo.EmbeddingColumnDim(ctx); err != nil {
		return fmt.Errorf("failed to read embedding schema dimension: %w", err)
	} else if schemaDim > 0 && schemaDim != cfg.EmbeddingDim {
		return fmt.Errorf("EMBEDDING_DIM is %d but the faces.embedding column is vector(%d)",
			cfg.EmbeddingDim, schemaDim)
	}

	// Encoding store, warmed from disk and database
	encodingStore := store.New(faceRepo, blobs, cfg.EmbeddingDim, logger)
	if err := encodingStore.Warm(ctx); err != nil {
		return fmt.Errorf("failed to warm encoding store: %w", err)
	}
	logger.Info("encoding store warmed", slog.Int("faces", encodingStore.Count()))

	// Face extractor
	extractor, err := face.NewExtractor(cfg)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	// Face service
	matcher := match.NewMatcher(cfg.MatchTolerance)
	faceService := service.NewFaceService(extractor, encodingStore, faceRepo, matcher, cfg.EmbeddingDim)

	// Remote encoding set fetcher
	fetcher := knownset.NewFetcher(knownSetFetchTimeout, cfg.EmbeddingDim)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		FaceService: faceService,
		Store:       encodingStore,
		Fetcher:     fetcher,
		DB:          pool,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
