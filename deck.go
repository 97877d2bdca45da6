package html2deck

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// DocumentConverter is the downstream boundary to the external engine that
// turns the merged PDF into the final presentation format. It receives the
// merged document's path and returns the path of the converted artifact.
// The engine is a black box; this package never interprets its output.
type DocumentConverter func(ctx context.Context, mergedPath string) (string, error)

// DeckOptions configures one deck build.
type DeckOptions struct {
	// WorkDir receives the intermediate per-page PDFs.
	WorkDir string

	// OutputPath is the merged deck destination.
	OutputPath string

	// Page overrides DefaultPageSpec when set.
	Page *PageSpec

	// Policy controls partial-success and merge-skip behavior.
	Policy MergePolicy

	// Convert, when set, runs the external PDF-to-presentation engine on
	// the merged document.
	Convert DocumentConverter

	// CleanupPages removes the per-page PDFs after a successful merge.
	// Pages always survive a failed merge so callers can inspect or retry.
	CleanupPages bool
}

// DeckResult reports a deck build: the per-job render report plus the paths
// of the produced artifacts.
type DeckResult struct {
	Results    []RenderResult
	MergedPath string // empty when the merge was skipped
	FinalPath  string // converted artifact, or MergedPath when no converter is set
}

// Succeeded counts results without error.
func (d *DeckResult) Succeeded() int {
	n := 0
	for _, r := range d.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// BuildDeck renders every source to a page PDF and assembles them into one
// deck. The per-job report is always complete: a failed page is recorded
// and the remaining sources are still rendered. Only session startup
// failure and cancellation abort the build outright.
func (c *Converter) BuildDeck(ctx context.Context, sources []string, opts DeckOptions) (*DeckResult, error) {
	jobs := JobsFor(sources, opts.WorkDir)

	results, err := c.RenderAll(ctx, jobs, opts.Page)
	if err != nil {
		return &DeckResult{Results: results}, err
	}

	deck := &DeckResult{Results: results}
	failed := len(results) - deck.Succeeded()

	if opts.Policy.RequireAll && failed > 0 {
		return deck, fmt.Errorf("%w: %d of %d pages failed", ErrIncompleteDeck, failed, len(results))
	}

	if opts.Policy.SkipMerge {
		return deck, nil
	}

	if err := c.MergePages(results, opts.OutputPath); err != nil {
		return deck, err
	}
	deck.MergedPath = opts.OutputPath
	deck.FinalPath = opts.OutputPath
	c.logger.Info("deck merged",
		zap.String("output", opts.OutputPath),
		zap.Int("pages", len(results)-failed),
		zap.Int("failed", failed))

	if opts.CleanupPages {
		for _, r := range results {
			if r.Err == nil {
				if rmErr := os.Remove(r.OutputPath); rmErr != nil {
					c.logger.Warn("page cleanup failed", zap.String("path", r.OutputPath), zap.Error(rmErr))
				}
			}
		}
	}

	if opts.Convert != nil {
		finalPath, err := opts.Convert(ctx, deck.MergedPath)
		if err != nil {
			return deck, fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		deck.FinalPath = finalPath
	}

	return deck, nil
}

// DefaultDeckName returns a timestamped deck file name, e.g.
// presentation_20250114_153012.pdf.
func DefaultDeckName(now time.Time) string {
	return "presentation_" + now.Format("20060102_150405") + ".pdf"
}
