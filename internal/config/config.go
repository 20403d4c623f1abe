package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Generator     GeneratorConfig     `yaml:"generator"`
	Docs          DocsConfig          `yaml:"docs"`
	Slack         SlackConfig         `yaml:"slack"`
	Server        ServerConfig        `yaml:"server"`
	Watch         WatchConfig         `yaml:"watch"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type TranscriptionConfig struct {
	ProjectID            string  `yaml:"project_id"`
	Language             string  `yaml:"language"`
	SampleRate           int     `yaml:"sample_rate"`
	ChunkSeconds         float64 `yaml:"chunk_seconds"`
	LongThresholdSeconds float64 `yaml:"long_threshold_seconds"`
	FFmpegPath           string  `yaml:"ffmpeg_path"`
	FFprobePath          string  `yaml:"ffprobe_path"`
}

type GeneratorConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "gemini"
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

type DocsConfig struct {
	FolderName string `yaml:"folder_name"`
}

type SlackConfig struct {
	Channel string `yaml:"channel"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	UploadDir   string `yaml:"upload_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type WatchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Input   string `yaml:"input"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Transcription.Language == "" {
		c.Transcription.Language = "ja-JP"
	}
	if c.Transcription.SampleRate == 0 {
		c.Transcription.SampleRate = 16000
	}
	if c.Transcription.ChunkSeconds == 0 {
		c.Transcription.ChunkSeconds = 50
	}
	if c.Transcription.LongThresholdSeconds == 0 {
		c.Transcription.LongThresholdSeconds = 60
	}
	if c.Transcription.FFmpegPath == "" {
		c.Transcription.FFmpegPath = "ffmpeg"
	}
	if c.Transcription.FFprobePath == "" {
		c.Transcription.FFprobePath = "ffprobe"
	}
	if c.Transcription.ChunkSeconds > c.Transcription.LongThresholdSeconds {
		return fmt.Errorf("transcription.chunk_seconds (%g) must not exceed long_threshold_seconds (%g)",
			c.Transcription.ChunkSeconds, c.Transcription.LongThresholdSeconds)
	}

	if c.Generator.Provider == "" {
		c.Generator.Provider = "openai"
	}
	switch c.Generator.Provider {
	case "openai":
		if c.Generator.Model == "" {
			c.Generator.Model = "gpt-4o-mini"
		}
	case "gemini":
		if c.Generator.Model == "" {
			c.Generator.Model = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("generator.provider must be \"openai\" or \"gemini\", got %q", c.Generator.Provider)
	}
	if c.Generator.Temperature == 0 {
		c.Generator.Temperature = 0.7
	}

	if c.Docs.FolderName == "" {
		c.Docs.FolderName = "minutes_test"
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "data/uploads"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 500
	}

	if c.Watch.Enabled && c.Watch.Input == "" {
		return fmt.Errorf("watch.input is required when watch.enabled is true")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
