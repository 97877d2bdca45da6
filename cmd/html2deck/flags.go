package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// deckFlags holds all flags for the deck build command.
type deckFlags struct {
	config     string
	input      string
	output     string
	deckName   string
	workers    int
	browserBin string
	requireAll bool
	noMerge    bool
	keepPages  bool
	quiet      bool
	verbose    bool
	version    bool
}

// parseFlags parses command-line arguments into deckFlags.
// Returns the remaining positional arguments.
func parseFlags(args []string) (*deckFlags, []string, error) {
	flags := &deckFlags{}

	fs := flag.NewFlagSet("html2deck", flag.ContinueOnError)
	fs.StringVarP(&flags.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&flags.input, "input", "i", "", "slides directory (overrides config)")
	fs.StringVarP(&flags.output, "output", "o", "", "output directory (overrides config)")
	fs.StringVar(&flags.deckName, "name", "", "merged deck file name (default: timestamped)")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "concurrent page contexts (0 = auto)")
	fs.StringVar(&flags.browserBin, "browser-bin", "", "path to a Chrome/Chromium binary")
	fs.BoolVar(&flags.requireAll, "require-all", false, "fail instead of merging a partial deck")
	fs.BoolVar(&flags.noMerge, "no-merge", false, "stop after rendering per-page PDFs")
	fs.BoolVar(&flags.keepPages, "keep-pages", false, "keep per-page PDFs after merging")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress non-error output")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: html2deck [flags] [slides-dir]\n\n")
		fmt.Fprintf(fs.Output(), "Renders HTML slide documents to fixed-size PDF pages and merges\nthem, in order, into a single deck PDF.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}
