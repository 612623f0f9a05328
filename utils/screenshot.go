package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-seace-automation/internal/browser"
)

// ScreenShotDebugger handles debug screenshots
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger(outputDir string) *ScreenShotDebugger {
	if outputDir == "" {
		outputDir = filepath.Join(".", "logs", "screenshots")
	}
	os.MkdirAll(outputDir, 0755)
	return &ScreenShotDebugger{
		outputDir: outputDir,
	}
}

// Capture saves a full-page screenshot named after the failing step.
func (s *ScreenShotDebugger) Capture(page browser.Page, name string) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", name, timestamp)
	path := filepath.Join(s.outputDir, filename)

	if err := page.Screenshot(path); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("📸 Screenshot saved: %s", path)
	return nil
}
