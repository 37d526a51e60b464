package chartshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout names artifacts down to the second. Two captures within
// the same second and directory collide; the later write wins.
const timestampLayout = "20060102_150405"

// artifactName returns the filename for a capture taken at the given time.
// An explicit cfg.Filename wins verbatim.
func (cfg Config) artifactName(now time.Time) string {
	if cfg.Filename != "" {
		return cfg.Filename
	}
	name := cfg.Prefix
	if cfg.Symbol != "" {
		name += "_" + strings.ToUpper(strings.TrimSpace(cfg.Symbol))
	}
	return name + "_" + now.Format(timestampLayout) + ".png"
}

// artifactDir returns the directory the artifact is written to. Captures
// for a symbol get their own subfolder.
func (cfg Config) artifactDir() string {
	if cfg.Symbol != "" {
		return filepath.Join(cfg.OutputDir, strings.ToUpper(strings.TrimSpace(cfg.Symbol)))
	}
	return cfg.OutputDir
}

// save writes the image to dir/name, creating dir if needed, and returns
// the written path.
func (r *Result) save(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrFilesystem, dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, r.Image, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %w", ErrFilesystem, path, err)
	}

	return path, nil
}
