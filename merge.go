package html2deck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// mergeFunc performs the raw PDF concatenation of inFiles, in order, into
// outFile. Abstracted so merge policy and atomicity are testable without
// real PDFs.
type mergeFunc func(inFiles []string, outFile string) error

// pdfcpuMerge concatenates PDFs with pdfcpu.
func pdfcpuMerge(inFiles []string, outFile string) error {
	return api.MergeCreateFile(inFiles, outFile, false, nil)
}

// MergePages concatenates the successfully rendered pages, in result order,
// into a single PDF at outputPath. The write is atomic: the merged document
// lands in a temporary file first and is renamed into place, so a failed
// merge never leaves a truncated file at outputPath.
//
// Fails with ErrNoSuccessfulPages when no result succeeded. This step has
// no dependency on rendering internals; results may point at any PDFs.
func (c *Converter) MergePages(results []RenderResult, outputPath string) error {
	return mergePagesWith(results, outputPath, c.merger)
}

func mergePagesWith(results []RenderResult, outputPath string, merge mergeFunc) error {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			paths = append(paths, r.OutputPath)
		}
	}
	if len(paths) == 0 {
		return ErrNoSuccessfulPages
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrMergeIO, err)
	}

	// Temp file in the destination directory so the final rename stays on
	// one filesystem.
	tmp, err := os.CreateTemp(dir, ".deck-*.pdf")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMergeIO, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMergeIO, err)
	}

	if err := merge(paths, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMergeIO, err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMergeIO, err)
	}

	return nil
}

// PageCount reports the number of pages in a PDF document. Exposed for
// callers validating merged decks.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMergeIO, err)
	}
	return n, nil
}
