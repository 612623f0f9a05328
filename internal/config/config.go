// Load envs from .env
// Load YAML config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public SEACE search page.
const DefaultBaseURL = "https://prodapp2.seace.gob.pe/seacebus-uiwd-pub/buscadorPublico/buscadorPublico.xhtml"

type Config struct {
	BaseURL string `yaml:"base_url" env:"SEACE_BASE_URL"`
	// Headful disables headless mode, for local debugging only.
	Headful       bool   `yaml:"headful" env:"SEACE_HEADFUL"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	Port          string `yaml:"port" env:"PORT"`
	//Optional Telegram reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	return cfg
}

func applyEnv(cfg *Config) {
	if url := os.Getenv("SEACE_BASE_URL"); url != "" {
		cfg.BaseURL = url
	}

	if headful := os.Getenv("SEACE_HEADFUL"); headful == "1" || headful == "true" {
		cfg.Headful = true
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "logs/screenshots"
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
}

// TelegramEnabled reports whether the optional reporter can be built.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
