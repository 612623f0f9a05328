package main

import (
	"fmt"
	"log"
	"time"

	"go-seace-automation/internal/browser"
	"go-seace-automation/internal/config"
)

func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	cfg := config.Load()

	//create browser manager
	mgr, err := browser.NewManager(!cfg.Headful)
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer mgr.Close()

	fmt.Println("✅ Playwright started")

	//create page and navigate
	page, err := mgr.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}
	defer page.Close()

	fmt.Printf("🔍 Navigating to %s...\n", cfg.BaseURL)
	if err := page.Goto(cfg.BaseURL, browser.GotoOptions{
		WaitUntil: browser.LoadStateDomContentLoaded,
		Timeout:   60 * time.Second,
	}); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	page.WaitForTimeout(3 * time.Second)

	//take screenshot
	if err := page.Screenshot("seace-test.png"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: seace-test.png")
	}
	fmt.Println("✨ Test complete!")
}
