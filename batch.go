package html2deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hollisjv/go-html2deck/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// sessionHandle abstracts browser session lifecycle to enable testing the
// batch logic without a browser.
type sessionHandle interface {
	ensure() error
	Close() error
}

// Compile-time interface check.
var _ sessionHandle = (*browserSession)(nil)

// Converter renders batches of HTML slide documents to PDF pages and
// assembles them into decks. It owns at most one browser session, created
// lazily on first use and released by Close. A Converter is safe for use
// by a single batch at a time; use ConverterPool for independent batches.
type Converter struct {
	cfg      converterConfig
	session  sessionHandle
	capturer pageCapturer
	merger   mergeFunc
	logger   *zap.Logger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithWorkers, WithLogger).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			navigationTimeout: defaultNavigationTimeout,
			readinessBudget:   defaultReadinessBudget,
			settleDelay:       defaultSettleDelay,
			workers:           DefaultWorkers,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	session := newBrowserSession(c.cfg.browserBin, c.logger)
	c.session = session

	// Create capturer and merger if not injected (e.g., by tests)
	if c.capturer == nil {
		c.capturer = &rodCapturer{
			session: session,
			waiter:  newDOMReadinessWaiter(c.cfg.settleDelay, c.logger),
			cfg:     c.cfg,
			logger:  c.logger,
		}
	}
	if c.merger == nil {
		c.merger = pdfcpuMerge
	}

	return c
}

// RenderAll renders every job and reports a result per job, in job order,
// regardless of individual failures. The only error conditions are session
// startup failure (returned with zero results) and cancellation (returned
// with the partial report; the browser is torn down first).
func (c *Converter) RenderAll(ctx context.Context, jobs []RenderJob, spec *PageSpec) ([]RenderResult, error) {
	if spec == nil {
		spec = DefaultPageSpec()
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	if err := c.session.ensure(); err != nil {
		return nil, err
	}

	workers := c.cfg.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	// Indexed results slice keeps report order equal to job order no
	// matter which worker finishes first.
	results := make([]RenderResult, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{Index: jobs[idx].Index, Err: err}
					continue
				}
				results[idx] = c.renderJob(ctx, jobs[idx], spec)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Cancelled mid-batch: the contract is no live browser process
		// after return. Page contexts are already closed by their owners.
		if closeErr := c.Close(); closeErr != nil {
			c.logger.Warn("browser teardown after cancellation failed", zap.Error(closeErr))
		}
		return results, err
	}

	return results, nil
}

// renderJob runs one job end to end: existence check, capture, write.
// On failure nothing is written at the job's output path.
func (c *Converter) renderJob(ctx context.Context, job RenderJob, spec *PageSpec) RenderResult {
	start := time.Now()
	result := RenderResult{Index: job.Index, OutputPath: job.OutputPath}

	if !fileutil.FileExists(job.SourcePath) {
		result.Err = fmt.Errorf("%w: %s", ErrSourceNotFound, job.SourcePath)
		result.Duration = time.Since(start)
		return result
	}

	pdfBuf, err := c.capturer.CapturePage(ctx, job.SourcePath, spec)
	if err != nil {
		c.logger.Warn("page render failed",
			zap.Int("index", job.Index),
			zap.String("source", job.SourcePath),
			zap.Error(err))
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- page PDFs are intended to be readable
	if err := os.WriteFile(job.OutputPath, pdfBuf, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	c.logger.Debug("page rendered",
		zap.Int("index", job.Index),
		zap.String("output", job.OutputPath),
		zap.Duration("took", result.Duration))
	return result
}

// Close releases the browser session. Safe to call multiple times.
func (c *Converter) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

// PageFileName returns the deterministic file name for the page at the
// given zero-based index. Names derive from the index, not the source file
// name, so merge order never depends on filesystem sort order.
func PageFileName(index int) string {
	return fmt.Sprintf("page_%04d.pdf", index+1)
}

// JobsFor builds the ordered job list for the given sources, placing page
// files in workDir using ordinal names.
func JobsFor(sources []string, workDir string) []RenderJob {
	jobs := make([]RenderJob, len(sources))
	for i, src := range sources {
		jobs[i] = RenderJob{
			SourcePath: src,
			Index:      i,
			OutputPath: filepath.Join(workDir, PageFileName(i)),
		}
	}
	return jobs
}
