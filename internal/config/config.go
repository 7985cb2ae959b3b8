// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token       string `yaml:"-"` // from TELEGRAM_TOKEN
	Workers     int    `yaml:"workers"`      // polling workers
	PollTimeout int    `yaml:"poll_timeout"` // long-poll timeout in seconds
	Locale      string `yaml:"locale"`       // message/persona locale
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port int `yaml:"port"` // ops server: /health, /metrics
}

type AIConfig struct {
	AnthropicKey    string `yaml:"-"` // from ANTHROPIC_API_KEY
	OpenAIKey       string `yaml:"-"` // from OPENAI_API_KEY
	GeminiKey       string `yaml:"-"` // from GEMINI_API_KEY
	GeminiURL       string `yaml:"gemini_url"`
	Model           string `yaml:"model"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

type ChatConfig struct {
	MaxContextTurns int `yaml:"max_context_turns"` // rolling history bound per user
	HistoryTTLHours int `yaml:"history_ttl_hours"` // drop idle histories after this; 0 = keep forever
}

type SpeechConfig struct {
	Language string `yaml:"language"` // target language code, e.g. ru-RU
	APIKey   string `yaml:"api_key"`  // speech API key; built-in default when empty
	Endpoint string `yaml:"endpoint"` // override for tests
}

type OCRConfig struct {
	TesseractPath string `yaml:"tesseract_path"` // empty = PATH lookup
	Languages     string `yaml:"languages"`      // tesseract -l argument
}

type MediaConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"` // empty = PATH lookup
}

type Config struct {
	Bot    BotConfig    `yaml:"bot"`
	Log    LogConfig    `yaml:"log"`
	Admin  AdminConfig  `yaml:"admin"`
	AI     AIConfig     `yaml:"ai"`
	Chat   ChatConfig   `yaml:"chat"`
	Speech SpeechConfig `yaml:"speech"`
	OCR    OCRConfig    `yaml:"ocr"`
	Media  MediaConfig  `yaml:"media"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file at path, overlays secrets from the
// environment and validates the result. The config file may be absent; the
// secrets may not.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// secrets come from the environment only
	cfg.Bot.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.AI.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.PollTimeout <= 0 {
		cfg.Bot.PollTimeout = 60
	}
	if cfg.Bot.Locale == "" {
		cfg.Bot.Locale = "uk"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8081
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "claude-3-7-sonnet-20250219"
	}
	if cfg.AI.MaxOutputTokens <= 0 {
		cfg.AI.MaxOutputTokens = 1500
	}
	if cfg.Chat.MaxContextTurns <= 0 {
		cfg.Chat.MaxContextTurns = 10
	}
	if cfg.Speech.Language == "" {
		cfg.Speech.Language = "ru-RU"
	}
	if cfg.OCR.Languages == "" {
		cfg.OCR.Languages = "rus+eng"
	}

	// Minimal validation; the process must not start without its secrets.
	if cfg.Bot.Token == "" {
		return nil, errors.New("TELEGRAM_TOKEN is required")
	}
	if !dev && cfg.AI.AnthropicKey == "" && cfg.AI.OpenAIKey == "" && cfg.AI.GeminiKey == "" {
		return nil, errors.New("no AI provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
