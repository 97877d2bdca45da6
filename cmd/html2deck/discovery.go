package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Sentinel errors for slide discovery.
var (
	ErrNoInput  = errors.New("no slides directory specified")
	ErrNoSlides = errors.New("no HTML slides found")
	ErrNotADir  = errors.New("slides path is not a directory")
)

// discoverSlides finds the ordered list of slide documents in dir.
//
// Resolution order:
//  1. slide_1.html, slide_2.html, ... taken while contiguous
//  2. the configured index file alone
//  3. every *.html in the directory, sorted by name, excluding the index file
func discoverSlides(dir, indexFile string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADir, dir)
	}

	// Numbered slides win: their order is explicit.
	var slides []string
	for i := 1; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("slide_%d.html", i))
		if _, err := os.Stat(path); err != nil {
			break
		}
		slides = append(slides, path)
	}
	if len(slides) > 0 {
		return slides, nil
	}

	if indexFile != "" {
		indexPath := filepath.Join(dir, indexFile)
		if _, err := os.Stat(indexPath); err == nil {
			return []string{indexPath}, nil
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		if indexFile != "" && filepath.Base(m) == indexFile {
			continue
		}
		slides = append(slides, m)
	}

	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSlides, dir)
	}
	return slides, nil
}
