package main

import (
	"context"
	"errors"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bergset/chartshot/pkg/chartshot"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
}

func main() {
	s, err := loadSettings()
	if err != nil {
		log.Fatalf("Error loading settings: %v", err)
	}

	symbols, err := s.symbols()
	if err != nil {
		log.Fatalf("Error loading symbols: %v", err)
	}

	ctx := context.Background()

	if len(symbols) == 0 {
		// Plain mode: capture the configured page as-is.
		result, err := chartshot.Capture(ctx, s.Config)
		if err != nil {
			handleCaptureError(s.Config.URL, err)
			os.Exit(1)
		}
		log.Infof("Screenshot saved to %s", result.Path)
		return
	}

	runBatch(ctx, s, symbols)
}

// runBatch captures each symbol sequentially and logs a summary. The
// process exits non-zero only when nothing was captured at all.
func runBatch(ctx context.Context, s *settings, symbols []string) {
	var saved, failed, skipped []string

	for i, symbol := range symbols {
		log.Infof("[%d/%d] Processing %s", i+1, len(symbols), symbol)

		if contains(s.SkipSymbols, symbol) {
			log.Infof("Skipping %s (in skip list)", symbol)
			skipped = append(skipped, symbol)
			continue
		}

		cfg := s.Config
		cfg.Symbol = symbol
		cfg.URL = chartshot.QuoteURL(symbol, contains(s.IndexSymbols, symbol))

		result, err := chartshot.Capture(ctx, cfg)
		if err != nil {
			handleCaptureError(symbol, err)
			failed = append(failed, symbol)
			continue
		}

		log.Infof("Screenshot saved to %s", result.Path)
		saved = append(saved, symbol)
	}

	log.Infof("Batch complete: %d saved, %d skipped, %d failed", len(saved), len(skipped), len(failed))
	if len(failed) > 0 {
		log.Warnf("Failed: %s", strings.Join(failed, ", "))
	}

	if len(saved) == 0 && len(failed) > 0 {
		os.Exit(1)
	}
}

func handleCaptureError(target string, err error) {
	switch {
	case errors.Is(err, chartshot.ErrEngine):
		log.Errorf("Chrome is not available: %s", unwrapError(err))
	case isDNSError(err):
		log.Errorf("DNS lookup failed for %s", target)
	case isTimeoutError(err):
		log.Errorf("Timed out capturing %s", target)
	default:
		log.Errorf("Error capturing %s: %s", target, unwrapError(err))
	}
}

func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	errMessage := getFullErrorMessage(err)
	return strings.Contains(errMessage, "net::ERR_NAME_NOT_RESOLVED") ||
		strings.Contains(errMessage, "no such host")
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errMessage := getFullErrorMessage(err)
	return strings.Contains(errMessage, "context deadline exceeded") ||
		strings.Contains(errMessage, "timeout")
}

func getFullErrorMessage(err error) string {
	var sb strings.Builder
	for err != nil {
		sb.WriteString(err.Error())
		err = errors.Unwrap(err)
		if err != nil {
			sb.WriteString(" | ")
		}
	}
	return sb.String()
}

func unwrapError(err error) string {
	rootErr := err
	for {
		unwrappedErr := errors.Unwrap(rootErr)
		if unwrappedErr == nil {
			break
		}
		rootErr = unwrappedErr
	}
	return rootErr.Error()
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
