package chartshot

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	log "github.com/sirupsen/logrus"
)

// Config controls a single capture. The zero value is not usable; start
// from NewConfig and adjust. Defaults live here in the caller-facing
// constructor, not inside Capture.
type Config struct {
	URL            string        // page to capture
	OutputDir      string        // created if missing
	Filename       string        // optional; used verbatim instead of the timestamped name
	Prefix         string        // prefix for the timestamped name
	Symbol         string        // optional stock symbol; adds a per-symbol subfolder
	Timeout        time.Duration // deadline for navigation and readiness
	SettleDelay    time.Duration // extra wait after load before capturing
	CaptureWidth   int
	CaptureHeight  int
	FullPage       bool    // capture the entire document height, not just the viewport
	Stealth        bool    // evade bot detection (Barchart serves empty shells without it)
	UserAgent      string
	Imprint        bool    // stamp URL and capture time under the image
	BlankThreshold float64 // mean RGB above this counts as blank; 0 disables the check
}

// NewConfig returns the stock Barchart put-call-ratio setup.
func NewConfig() Config {
	return Config{
		URL:            QuoteURL("SPY", false),
		OutputDir:      "screenshots",
		Prefix:         "barchart",
		Timeout:        30 * time.Second,
		SettleDelay:    2 * time.Second,
		CaptureWidth:   1366,
		CaptureHeight:  768,
		FullPage:       true,
		Stealth:        true,
		Imprint:        true,
		BlankThreshold: 240,
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	}
}

// Result contains the outcome of a capture.
type Result struct {
	TargetURL  string
	LandingURL string
	Image      Image
	StatusCode int
	Path       string // where the artifact was written
	Blank      bool   // capture looked mostly white
}

type Image []byte

// Capture launches a headless Chrome, navigates to cfg.URL, waits for the
// page to stabilize, takes a full-page screenshot and writes it under
// cfg.OutputDir. The browser is an exclusively-owned resource of this call
// and is released on every exit path.
func Capture(ctx context.Context, cfg Config) (*Result, error) {
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %w", ErrNavigation, cfg.URL, err)
	}

	log.Debugf("Attempting capture on %s", cfg.URL)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	bin, found := launcher.LookPath()
	if !found {
		return nil, fmt.Errorf("%w: no chrome binary found (run the browser installer first)", ErrEngine)
	}

	l := launcher.New().
		Headless(true).
		Bin(bin).
		NoSandbox(true)

	if cfg.UserAgent != "" {
		l.Set("user-agent", cfg.UserAgent)
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launching chrome: %w", ErrEngine, err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: connecting to chrome: %w", ErrEngine, err)
	}
	defer browser.MustClose()

	var page *rod.Page
	if cfg.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening page: %w", ErrEngine, err)
	}

	if cfg.CaptureWidth > 0 && cfg.CaptureHeight > 0 {
		viewport := &proto.EmulationSetDeviceMetricsOverride{
			Width:             cfg.CaptureWidth,
			Height:            cfg.CaptureHeight,
			DeviceScaleFactor: 1,
			Mobile:            false,
		}
		if err := page.SetViewport(viewport); err != nil {
			return nil, fmt.Errorf("%w: setting viewport: %w", ErrCapture, err)
		}
	}

	result := &Result{TargetURL: cfg.URL}

	var first proto.NetworkResponseReceived
	wait := page.Context(ctx).WaitEvent(&first)

	if err := page.Context(ctx).Navigate(cfg.URL); err != nil {
		return nil, fmt.Errorf("%w: navigating to %s: %w", ErrNavigation, cfg.URL, err)
	}
	wait()

	if err := page.Context(ctx).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %s not ready after %v: %w", ErrNavigation, cfg.URL, cfg.Timeout, err)
	}

	if cfg.SettleDelay > 0 {
		time.Sleep(cfg.SettleDelay)
	}

	result.LandingURL = page.MustInfo().URL
	if first.Response != nil {
		result.StatusCode = first.Response.Status
	}

	result.Image, err = page.Screenshot(cfg.FullPage, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot of %s: %w", ErrCapture, cfg.URL, err)
	}

	now := time.Now()

	if cfg.BlankThreshold > 0 {
		blank, err := IsBlank(result.Image, cfg.BlankThreshold)
		if err != nil {
			log.Warnf("Could not check %s for blankness: %v", cfg.URL, err)
		} else if blank {
			// No retry here. Blank shells are logged and saved as-is.
			result.Blank = true
			log.Warnf("Capture of %s looks blank (mean RGB above %.0f)", cfg.URL, cfg.BlankThreshold)
		}
	}

	if cfg.Imprint {
		caption := fmt.Sprintf("%s  %s", cfg.URL, now.Format("2006-01-02 15:04:05"))
		result.Image, err = result.Image.AddCaption(caption)
		if err != nil {
			return nil, fmt.Errorf("%w: imprinting caption: %w", ErrCapture, err)
		}
	}

	result.Path, err = result.save(cfg.artifactDir(), cfg.artifactName(now))
	if err != nil {
		return nil, err
	}

	return result, nil
}
