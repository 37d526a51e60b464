package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/bergset/chartshot/pkg/chartshot"
)

// settings is the caller-layer configuration: the capture Config plus the
// batch controls. Everything comes from the environment, optionally via a
// .env file next to the binary.
type settings struct {
	chartshot.Config
	Symbol       string
	SymbolsFile  string
	SkipSymbols  []string
	IndexSymbols []string
}

// loadSettings loads .env if present and builds settings on top of the
// package defaults. There is no flag surface.
func loadSettings() (*settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if envBool("DEBUG") {
		log.SetLevel(log.DebugLevel)
	}

	s := &settings{Config: chartshot.NewConfig()}

	if v := os.Getenv("TARGET_URL"); v != "" {
		s.URL = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv("FILENAME"); v != "" {
		s.Filename = v
	}
	if v := os.Getenv("FILENAME_PREFIX"); v != "" {
		s.Prefix = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		s.UserAgent = v
	}

	var err error
	if s.Timeout, err = envSeconds("TIMEOUT", s.Timeout); err != nil {
		return nil, err
	}
	if s.SettleDelay, err = envSeconds("SETTLE_DELAY", s.SettleDelay); err != nil {
		return nil, err
	}

	if v := os.Getenv("BLANK_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BLANK_THRESHOLD %q: %w", v, err)
		}
		s.BlankThreshold = threshold
	}

	if envBool("NO_IMPRINT") {
		s.Imprint = false
	}
	if envBool("NO_STEALTH") {
		s.Stealth = false
	}
	if envBool("VIEWPORT_ONLY") {
		s.FullPage = false
	}

	s.Symbol = strings.ToUpper(strings.TrimSpace(os.Getenv("STOCK_SYMBOL")))
	s.SymbolsFile = strings.TrimSpace(os.Getenv("STOCK_SYMBOLS_FILE"))
	s.SkipSymbols = splitList(os.Getenv("SKIP_SYMBOLS"))
	s.IndexSymbols = splitList(os.Getenv("INDEX_SYMBOLS"))

	return s, nil
}

// symbols resolves the batch: the symbols file when set, otherwise the
// single STOCK_SYMBOL, otherwise empty (plain fixed-URL mode).
func (s *settings) symbols() ([]string, error) {
	if s.SymbolsFile != "" {
		symbols, err := readSymbolsFile(s.SymbolsFile)
		if err != nil {
			return nil, err
		}
		if len(symbols) == 0 {
			return nil, fmt.Errorf("no symbols found in %s", s.SymbolsFile)
		}
		return symbols, nil
	}

	if s.Symbol != "" {
		return []string{s.Symbol}, nil
	}

	return nil, nil
}

// readSymbolsFile reads stock symbols from a file, one per line.
func readSymbolsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading symbols file: %w", err)
	}
	defer file.Close()

	var symbols []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if line != "" {
			symbols = append(symbols, line)
		}
	}

	return symbols, scanner.Err()
}

// envSeconds parses an environment variable holding a number of seconds,
// fractional allowed, falling back to def when unset.
func envSeconds(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	seconds, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// splitList parses a comma-separated, case-insensitive symbol list.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.ToUpper(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
