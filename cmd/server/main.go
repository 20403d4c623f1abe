package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"minutes-pipeline/internal/config"
	"minutes-pipeline/internal/docstore"
	"minutes-pipeline/internal/logger"
	"minutes-pipeline/internal/media"
	"minutes-pipeline/internal/minutes"
	"minutes-pipeline/internal/notify"
	"minutes-pipeline/internal/pipeline"
	"minutes-pipeline/internal/server"
	"minutes-pipeline/internal/transcriber"
	"minutes-pipeline/internal/watcher"
	"minutes-pipeline/pkg/executor"
)

func main() {
	ctx := context.Background()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Minutes Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Generator: %s (%s)", cfg.Generator.Provider, cfg.Generator.Model)
	log.Info(ctx, "Max concurrent runs: %d", cfg.Performance.MaxConcurrent)
	if projectID := cfg.ProjectID(); projectID != "" {
		log.Info(ctx, "Google Cloud project: %s", projectID)
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0755); err != nil {
		log.Error(ctx, "Failed to create upload dir: %v", err)
		os.Exit(1)
	}

	orch, err := buildOrchestrator(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	srv := server.New(orch, log, cfg.Server.UploadDir, cfg.Server.MaxUploadMB)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Handler(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)

	if cfg.Watch.Enabled {
		if err := os.MkdirAll(cfg.Watch.Input, 0755); err != nil {
			log.Error(ctx, "Failed to create watch dir: %v", err)
			os.Exit(1)
		}
		w, err := watcher.New(cfg.Watch.Input, func(ctx context.Context, path string) {
			id := orch.Submit(ctx, path)
			log.Info(ctx, "Watched file %s submitted as run %s", path, id)
		}, log)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
		log.Info(ctx, "Watching for input files: %s", cfg.Watch.Input)
	}

	go func() {
		log.Info(ctx, "HTTP server listening on :%d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP shutdown: %v", err)
	}

	// Let in-flight runs finish; their results stay queryable until exit.
	orch.Wait()
	log.Info(ctx, "Pipeline stopped")
}

// buildOrchestrator wires the four pipeline collaborators from config and
// environment.
func buildOrchestrator(ctx context.Context, cfg *config.Config, log logger.Logger) (pipeline.Orchestrator, error) {
	creds, err := config.ResolveGoogleCredentials()
	if err != nil {
		return nil, fmt.Errorf("resolve google credentials: %w", err)
	}
	log.Info(ctx, "Google credentials: %s", creds.Provider)

	recognizer, err := transcriber.NewGoogleRecognizer(ctx, creds, cfg.Transcription.Language, cfg.Transcription.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("create recognizer: %w", err)
	}

	med := media.New(cfg.Transcription.FFmpegPath, cfg.Transcription.FFprobePath,
		cfg.Transcription.SampleRate, executor.New(), log)
	trans := transcriber.New(med, recognizer, log,
		cfg.Transcription.ChunkSeconds, cfg.Transcription.LongThresholdSeconds)

	gen, err := buildGenerator(cfg, log)
	if err != nil {
		return nil, err
	}

	docs, err := docstore.NewGoogle(ctx, creds, log)
	if err != nil {
		return nil, fmt.Errorf("create doc store: %w", err)
	}

	notifier, err := notify.NewSlack(os.Getenv("SLACK_WEBHOOK_URL"), os.Getenv("SLACK_BOT_TOKEN"),
		cfg.SlackChannel(), log)
	if err != nil {
		return nil, fmt.Errorf("create notifier: %w", err)
	}

	return pipeline.New(trans, gen, docs, notifier, pipeline.NewMemoryStore(),
		log, cfg.Docs.FolderName, cfg.Performance.MaxConcurrent), nil
}

func buildGenerator(cfg *config.Config, log logger.Logger) (minutes.Generator, error) {
	switch cfg.Generator.Provider {
	case "gemini":
		return minutes.NewGeminiGenerator(geminiKeys(), cfg.Generator.Model, cfg.Generator.Temperature, log)
	default:
		return minutes.NewOpenAIGenerator(os.Getenv("OPENAI_API_KEY"), cfg.Generator.Model, cfg.Generator.Temperature)
	}
}

// geminiKeys reads GEMINI_API_KEYS (comma separated) with GEMINI_API_KEY as
// the single-key fallback.
func geminiKeys() []string {
	var keys []string
	for _, key := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
