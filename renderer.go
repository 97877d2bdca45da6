package html2deck

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// requestIdleWindow is how long the network must stay quiet after the load
// event before the document counts as settled. Covers fetch/XHR content
// that scripts start after the load event fires.
const requestIdleWindow = 300 * time.Millisecond

// pageCapturer abstracts single-document rendering to enable testing the
// batch logic without a browser.
type pageCapturer interface {
	CapturePage(ctx context.Context, sourcePath string, spec *PageSpec) ([]byte, error)
}

// Compile-time interface check.
var _ pageCapturer = (*rodCapturer)(nil)

// rodCapturer drives one browser tab through navigate, readiness wait and
// PDF capture for a single HTML document.
type rodCapturer struct {
	session *browserSession
	waiter  readinessWaiter
	cfg     converterConfig
	logger  *zap.Logger
}

// CapturePage renders sourcePath to a fixed-size PDF page and returns its
// bytes. The page context is always closed, even when capture fails.
func (r *rodCapturer) CapturePage(ctx context.Context, sourcePath string, spec *PageSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}

	page, err := r.session.page("about:blank")
	if err != nil {
		return nil, err
	}
	defer func() { _ = page.Close() }()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	// Bound the navigation with the configured timeout or what is left of
	// the caller's deadline, whichever is shorter.
	timeout := r.cfg.navigationTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	bounded := page.Timeout(timeout)
	if err := bounded.Navigate("file://" + abs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
	}
	if err := bounded.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
	}

	// Block until network activity is idle, still within the same
	// navigation bound. The load event alone misses script-driven requests.
	waitIdle := bounded.WaitRequestIdle(requestIdleWindow, nil, nil, nil)
	waitIdle()
	if err := bounded.GetContext().Err(); err != nil {
		return nil, fmt.Errorf("%w: network not idle: %v", ErrNavigationTimeout, err)
	}

	// Best effort: a slow image or font degrades the capture, it never
	// fails the render.
	r.waiter.AwaitReady(ctx, page, r.cfg.readinessBudget)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(spec))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailure, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrCaptureFailure, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions maps a PageSpec onto Chrome's printToPDF call.
// Chrome takes inches; the spec is in millimetres.
func buildPrintOptions(spec *PageSpec) *proto.PagePrintToPDF {
	if spec == nil {
		spec = DefaultPageSpec()
	}

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(spec.WidthMM / mmPerInch),
		PaperHeight:         floatPtr(spec.HeightMM / mmPerInch),
		MarginTop:           floatPtr(spec.Margins.Top / mmPerInch),
		MarginRight:         floatPtr(spec.Margins.Right / mmPerInch),
		MarginBottom:        floatPtr(spec.Margins.Bottom / mmPerInch),
		MarginLeft:          floatPtr(spec.Margins.Left / mmPerInch),
		PrintBackground:     spec.PrintBackground,
		Landscape:           spec.Landscape,
		Scale:               floatPtr(spec.Scale),
		DisplayHeaderFooter: false,
		PreferCSSPageSize:   false,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
