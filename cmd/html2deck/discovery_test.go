package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeHTML(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDiscoverSlides_NumberedSlides(t *testing.T) {
	dir := t.TempDir()
	want := []string{
		writeHTML(t, dir, "slide_1.html"),
		writeHTML(t, dir, "slide_2.html"),
		writeHTML(t, dir, "slide_3.html"),
	}
	// Extra documents must not leak in when numbered slides exist.
	writeHTML(t, dir, "notes.html")
	writeHTML(t, dir, "index.html")

	got, err := discoverSlides(dir, "index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d slides, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slide %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverSlides_GapStopsScan(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "slide_1.html")
	writeHTML(t, dir, "slide_2.html")
	// slide_3 missing; slide_4 must not be picked up.
	writeHTML(t, dir, "slide_4.html")

	got, err := discoverSlides(dir, "index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d slides, want 2 (scan stops at the gap)", len(got))
	}
}

func TestDiscoverSlides_IndexFallback(t *testing.T) {
	dir := t.TempDir()
	index := writeHTML(t, dir, "index.html")

	got, err := discoverSlides(dir, "index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != index {
		t.Errorf("got %v, want [%s]", got, index)
	}
}

func TestDiscoverSlides_GlobFallbackExcludesIndex(t *testing.T) {
	dir := t.TempDir()
	a := writeHTML(t, dir, "alpha.html")
	b := writeHTML(t, dir, "beta.html")

	got, err := discoverSlides(dir, "missing-index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("got %v, want sorted [%s %s]", got, a, b)
	}

	// With the index present it wins over the glob.
	writeHTML(t, dir, "missing-index.html")
	got, err = discoverSlides(dir, "missing-index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d slides, want 1 (index file alone)", len(got))
	}
}

func TestDiscoverSlides_EmptyDir(t *testing.T) {
	_, err := discoverSlides(t.TempDir(), "index.html")
	if !errors.Is(err, ErrNoSlides) {
		t.Errorf("error = %v, want ErrNoSlides", err)
	}
}

func TestDiscoverSlides_MissingDir(t *testing.T) {
	_, err := discoverSlides(filepath.Join(t.TempDir(), "nope"), "index.html")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestDiscoverSlides_NotADir(t *testing.T) {
	dir := t.TempDir()
	file := writeHTML(t, dir, "slide_1.html")

	_, err := discoverSlides(file, "index.html")
	if !errors.Is(err, ErrNotADir) {
		t.Errorf("error = %v, want ErrNotADir", err)
	}
}
