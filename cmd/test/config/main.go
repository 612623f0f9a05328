package main

import (
	"fmt"

	"go-seace-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("   Headful: %v\n", cfg.Headful)
	fmt.Printf("   Screenshot Dir: %s\n", cfg.ScreenshotDir)
	fmt.Printf("   Port: %s\n", cfg.Port)
	fmt.Printf("   Telegram enabled: %v\n", cfg.TelegramEnabled())
}
