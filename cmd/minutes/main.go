package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"minutes-pipeline/internal/config"
	"minutes-pipeline/internal/docstore"
	"minutes-pipeline/internal/export"
	"minutes-pipeline/internal/logger"
	"minutes-pipeline/internal/media"
	"minutes-pipeline/internal/minutes"
	"minutes-pipeline/internal/notify"
	"minutes-pipeline/internal/pipeline"
	"minutes-pipeline/internal/transcriber"
	"minutes-pipeline/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	docxPath := flag.String("docx", "", "also write the minutes as a .docx file at this path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	if _, err := os.Stat(inputPath); err != nil {
		log.Error(ctx, "Input file not found: %s", inputPath)
		os.Exit(1)
	}
	if !pipeline.AllowedFile(inputPath) {
		log.Error(ctx, "Unsupported file type: %s", inputPath)
		os.Exit(1)
	}

	orch, err := buildOrchestrator(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Processing: %s", inputPath)
	log.Info(ctx, "========================================")

	run, err := orch.Process(ctx, inputPath)
	if err != nil {
		log.Error(ctx, "Pipeline failed at %s: %v", run.Stage, err)
		os.Exit(1)
	}

	fmt.Println("========================================")
	fmt.Println("議事録の作成が完了しました")
	fmt.Printf("ドキュメント: %s\n", run.DocumentTitle)
	fmt.Printf("URL: %s\n", run.DocumentURL)
	fmt.Println("========================================")

	if *docxPath != "" {
		if err := export.WriteMinutes(run.DocumentTitle, run.Minutes, *docxPath); err != nil {
			log.Error(ctx, "Failed to write docx: %v", err)
			os.Exit(1)
		}
		fmt.Printf("Word出力: %s\n", *docxPath)
	}
}

// buildOrchestrator wires the pipeline collaborators for a single
// synchronous run.
func buildOrchestrator(ctx context.Context, cfg *config.Config, log logger.Logger) (pipeline.Orchestrator, error) {
	creds, err := config.ResolveGoogleCredentials()
	if err != nil {
		return nil, fmt.Errorf("resolve google credentials: %w", err)
	}

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
		log, cfg.Docs.FolderName, 1), nil
}

func buildGenerator(cfg *config.Config, log logger.Logger) (minutes.Generator, error) {
	switch cfg.Generator.Provider {
	case "gemini":
		return minutes.NewGeminiGenerator(geminiKeys(), cfg.Generator.Model, cfg.Generator.Temperature, log)
	default:
		return minutes.NewOpenAIGenerator(os.Getenv("OPENAI_API_KEY"), cfg.Generator.Model, cfg.Generator.Temperature)
	}
}

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
