package html2deck

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Default page dimensions: 1280x720 CSS pixels at 96 dpi, the 16:9 slide
// geometry most HTML slide templates target.
const (
	DefaultPageWidthMM  = 338.67
	DefaultPageHeightMM = 190.5
)

// Logical viewport used for every page context. Matches the default page
// aspect ratio so layout at capture time equals layout on screen.
const (
	viewportWidth  = 1280
	viewportHeight = 720
)

// Page spec bounds.
const (
	// MaxPageDimensionMM is Chrome's 200-inch printToPDF ceiling.
	MaxPageDimensionMM = 5080.0

	MinScale = 0.1
	MaxScale = 2.0
)

const mmPerInch = 25.4

// PageMargins holds the four page margins in millimetres.
type PageMargins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// PageSpec configures the physical page produced for each slide.
// It is shared by every job in a batch and never mutated during one.
type PageSpec struct {
	WidthMM         float64
	HeightMM        float64
	Margins         PageMargins
	PrintBackground bool
	Landscape       bool
	Scale           float64
}

// DefaultPageSpec returns the standard 16:9 slide page: full-bleed,
// backgrounds on, scale 1.0.
func DefaultPageSpec() *PageSpec {
	return &PageSpec{
		WidthMM:         DefaultPageWidthMM,
		HeightMM:        DefaultPageHeightMM,
		PrintBackground: true,
		Scale:           1.0,
	}
}

// Validate checks that the page spec is within Chrome's printable bounds.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSpec) Validate() error {
	if p == nil {
		return nil
	}

	if p.WidthMM <= 0 || p.WidthMM > MaxPageDimensionMM {
		return fmt.Errorf("%w: width %.2fmm (must be in (0, %.0f])", ErrInvalidPageSpec, p.WidthMM, MaxPageDimensionMM)
	}
	if p.HeightMM <= 0 || p.HeightMM > MaxPageDimensionMM {
		return fmt.Errorf("%w: height %.2fmm (must be in (0, %.0f])", ErrInvalidPageSpec, p.HeightMM, MaxPageDimensionMM)
	}
	for _, m := range []float64{p.Margins.Top, p.Margins.Right, p.Margins.Bottom, p.Margins.Left} {
		if m < 0 {
			return fmt.Errorf("%w: negative margin %.2fmm", ErrInvalidPageSpec, m)
		}
	}
	if p.Margins.Left+p.Margins.Right >= p.WidthMM {
		return fmt.Errorf("%w: horizontal margins consume the page", ErrInvalidPageSpec)
	}
	if p.Margins.Top+p.Margins.Bottom >= p.HeightMM {
		return fmt.Errorf("%w: vertical margins consume the page", ErrInvalidPageSpec)
	}
	if p.Scale < MinScale || p.Scale > MaxScale {
		return fmt.Errorf("%w: scale %.2f (must be between %.1f and %.1f)", ErrInvalidPageSpec, p.Scale, MinScale, MaxScale)
	}
	return nil
}

// RenderJob is one HTML document to rasterize. Immutable after creation,
// consumed exactly once.
type RenderJob struct {
	SourcePath string // HTML document to render
	Index      int    // position in the requested sequence
	OutputPath string // destination of the captured page PDF
}

// RenderResult is the outcome of one RenderJob. The ordered sequence of
// results (ascending Index) is the sole input to the merge step.
type RenderResult struct {
	Index      int
	OutputPath string
	Err        error
	Duration   time.Duration
}

// MergePolicy controls how the merge stage treats per-job failures.
type MergePolicy struct {
	// RequireAll skips the merge and fails the deck build when any job
	// failed. The default merges whatever succeeded.
	RequireAll bool

	// SkipMerge stops after per-page rendering. Page files are kept.
	SkipMerge bool
}

// Worker pool bounds. Each worker holds one open page context; Chrome
// multiplexes them within a single browser process.
const (
	MinWorkers     = 1
	MaxWorkers     = 8
	DefaultWorkers = 3
)

// Default wait bounds.
const (
	defaultNavigationTimeout = 30 * time.Second
	defaultReadinessBudget   = 10 * time.Second
	defaultSettleDelay       = 2 * time.Second
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	navigationTimeout time.Duration
	readinessBudget   time.Duration
	settleDelay       time.Duration
	workers           int
	browserBin        string
}

// WithNavigationTimeout bounds the initial page load per document.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithNavigationTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2deck: WithNavigationTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.navigationTimeout = d
	}
}

// WithReadinessBudget bounds the best-effort image/font readiness wait.
func WithReadinessBudget(d time.Duration) Option {
	if d <= 0 {
		panic("html2deck: WithReadinessBudget duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.readinessBudget = d
	}
}

// WithSettleDelay sets the fixed post-load delay that absorbs late layout
// and reflow not covered by the readiness signals. Zero disables it.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("html2deck: WithSettleDelay duration must not be negative")
	}
	return func(c *Converter) {
		c.cfg.settleDelay = d
	}
}

// WithWorkers bounds the number of concurrently open page contexts.
func WithWorkers(n int) Option {
	if n < MinWorkers || n > MaxWorkers {
		panic("html2deck: WithWorkers count out of range")
	}
	return func(c *Converter) {
		c.cfg.workers = n
	}
}

// WithBrowserBin points the launcher at a pre-installed Chrome/Chromium
// binary instead of letting rod download one.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("html2deck: WithLogger logger must not be nil")
	}
	return func(c *Converter) {
		c.logger = l
	}
}

// ValidateWorkers checks that a worker count is usable as a pool bound.
// Zero means auto-size.
func ValidateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
