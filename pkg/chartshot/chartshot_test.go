package chartshot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
)

func TestCaptureInvalidURL(t *testing.T) {
	cfg := NewConfig()
	cfg.URL = "://invalid-url"
	cfg.OutputDir = filepath.Join(t.TempDir(), "screenshots")

	_, err := Capture(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected an error for an invalid URL")
	}
	if !errors.Is(err, ErrNavigation) {
		t.Errorf("Expected ErrNavigation, got %v", err)
	}

	if _, statErr := os.Stat(cfg.OutputDir); !os.IsNotExist(statErr) {
		t.Error("Expected no output directory for a failed capture")
	}
}

func TestCapture(t *testing.T) {
	if _, found := launcher.LookPath(); !found {
		t.Skip("no chrome binary found")
	}

	cfg := NewConfig()
	cfg.URL = "https://example.com/"
	cfg.OutputDir = filepath.Join(t.TempDir(), "screenshots")
	cfg.SettleDelay = 0
	cfg.Imprint = false
	cfg.BlankThreshold = 0

	result, err := Capture(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to capture screenshot: %v", err)
	}

	if result.StatusCode != 200 {
		t.Errorf("Expected status code 200, got %d", result.StatusCode)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Artifact is empty")
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("Artifact is not a valid PNG")
	}
}

func TestCaptureUnreachable(t *testing.T) {
	if _, found := launcher.LookPath(); !found {
		t.Skip("no chrome binary found")
	}

	cfg := NewConfig()
	cfg.URL = "https://chartshot-test.invalid/"
	cfg.OutputDir = filepath.Join(t.TempDir(), "screenshots")
	cfg.Timeout = 15 * time.Second
	cfg.SettleDelay = 0

	_, err := Capture(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected an error for an unreachable host")
	}
	if !errors.Is(err, ErrNavigation) {
		t.Errorf("Expected ErrNavigation, got %v", err)
	}

	if _, statErr := os.Stat(cfg.OutputDir); !os.IsNotExist(statErr) {
		t.Error("Expected no file for a failed capture")
	}
}
