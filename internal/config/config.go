// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL string `yaml:"database_url"`

	//LLM settings. Provider is "openai", "gemini" or "" (deterministic only).
	LLMProvider string `yaml:"llm_provider"`
	OpenAIKey   string `yaml:"openai_api_key"`
	OpenAIModel string `yaml:"openai_model"`
	GeminiKey   string `yaml:"gemini_api_key"`
	GeminiModel string `yaml:"gemini_model"`

	//Browser settings
	Headless      bool   `yaml:"headless"`
	CookiesPath   string `yaml:"cookies_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	//Queue processing
	QueueWorkers int `yaml:"queue_workers"`

	//Automation timing, in seconds. The submit pause is a human-review
	//window, not a correctness requirement, so it is tunable.
	SettleDelaySeconds   int `yaml:"settle_delay_seconds"`
	FillTimeoutSeconds   int `yaml:"fill_timeout_seconds"`
	SubmitPauseSeconds   int `yaml:"submit_pause_seconds"`
	NavTimeoutSeconds    int `yaml:"nav_timeout_seconds"`
	PostClickWaitSeconds int `yaml:"post_click_wait_seconds"`

	//Optional Telegram reporting
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	//Logging
	LogJSON bool `yaml:"log_json"`
	Debug   bool `yaml:"debug"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	//Override with env vars
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.LLMProvider == "" && cfg.OpenAIKey != "" {
		cfg.LLMProvider = "openai"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-pro"
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "logs/screenshots"
	}
	if cfg.QueueWorkers <= 0 {
		cfg.QueueWorkers = 2
	}
	if cfg.SettleDelaySeconds <= 0 {
		cfg.SettleDelaySeconds = 3
	}
	if cfg.FillTimeoutSeconds <= 0 {
		cfg.FillTimeoutSeconds = 5
	}
	if cfg.SubmitPauseSeconds <= 0 {
		cfg.SubmitPauseSeconds = 10
	}
	if cfg.NavTimeoutSeconds <= 0 {
		cfg.NavTimeoutSeconds = 30
	}
	if cfg.PostClickWaitSeconds <= 0 {
		cfg.PostClickWaitSeconds = 3
	}

	//Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required (set DATABASE_URL or config file)")
	}

	return cfg, nil
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelaySeconds) * time.Second
}

func (c *Config) FillTimeout() time.Duration {
	return time.Duration(c.FillTimeoutSeconds) * time.Second
}

func (c *Config) SubmitPause() time.Duration {
	return time.Duration(c.SubmitPauseSeconds) * time.Second
}

func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSeconds) * time.Second
}

func (c *Config) PostClickWait() time.Duration {
	return time.Duration(c.PostClickWaitSeconds) * time.Second
}
