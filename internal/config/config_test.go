package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "logs/screenshots", cfg.ScreenshotDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Headful)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{BaseURL: "https://portal.test", Port: "9000"}
	applyDefaults(cfg)

	assert.Equal(t, "https://portal.test", cfg.BaseURL)
	assert.Equal(t, "9000", cfg.Port)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SEACE_BASE_URL", "https://env.test")
	t.Setenv("SEACE_HEADFUL", "1")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token123")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg := &Config{}
	applyEnv(cfg)

	assert.Equal(t, "https://env.test", cfg.BaseURL)
	assert.True(t, cfg.Headful)
	assert.Equal(t, "token123", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}

func TestTelegramEnabled(t *testing.T) {
	assert.False(t, (&Config{}).TelegramEnabled())
	assert.False(t, (&Config{TelegramToken: "t"}).TelegramEnabled())
	assert.True(t, (&Config{TelegramToken: "t", TelegramChatID: 1}).TelegramEnabled())
}
