package html2deck

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
)

// readinessWaiter blocks until a rendered document's deferred assets are
// loaded, or a deadline passes. Implementations must be best-effort: a
// timed-out wait degrades the capture, it never fails it. Partial asset
// loading must not block an entire batch.
type readinessWaiter interface {
	AwaitReady(ctx context.Context, page *rod.Page, budget time.Duration)
}

// Compile-time interface check.
var _ readinessWaiter = (*domReadinessWaiter)(nil)

// imagesSettledJS resolves once every <img> has either loaded or errored.
// A document with zero images resolves immediately.
const imagesSettledJS = `() => new Promise((resolve) => {
	const images = document.querySelectorAll('img');
	let pending = 0;
	for (const img of images) {
		if (img.complete) continue;
		pending++;
		img.addEventListener('load', done, { once: true });
		img.addEventListener('error', done, { once: true });
	}
	if (pending === 0) {
		resolve(true);
		return;
	}
	function done() {
		pending--;
		if (pending === 0) resolve(true);
	}
})`

// fontsReadyJS resolves when the document's font loading has finished.
const fontsReadyJS = `() => document.fonts.ready.then(() => true)`

// domReadinessWaiter polls the document's own readiness signals: image
// load/error events, the FontFaceSet ready promise, then a fixed settle
// delay for layout work those signals don't cover.
type domReadinessWaiter struct {
	settle time.Duration
	logger *zap.Logger
}

func newDOMReadinessWaiter(settle time.Duration, logger *zap.Logger) *domReadinessWaiter {
	return &domReadinessWaiter{settle: settle, logger: logger}
}

// AwaitReady waits for images and fonts, each bounded by a share of the
// budget, then sleeps the settle delay. Failures are logged as warnings.
func (w *domReadinessWaiter) AwaitReady(ctx context.Context, page *rod.Page, budget time.Duration) {
	sub := budget / 2
	if sub <= 0 {
		sub = time.Second
	}

	if _, err := page.Timeout(sub).Eval(imagesSettledJS); err != nil {
		w.logger.Warn("image readiness wait did not complete", zap.Error(err))
	}
	if _, err := page.Timeout(sub).Eval(fontsReadyJS); err != nil {
		w.logger.Warn("font readiness wait did not complete", zap.Error(err))
	}

	if w.settle <= 0 {
		return
	}
	select {
	case <-time.After(w.settle):
	case <-ctx.Done():
	}
}
