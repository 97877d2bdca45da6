package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	html2deck "github.com/hollisjv/go-html2deck"
	"github.com/hollisjv/go-html2deck/internal/config"
)

// DeckBuilder is the interface to the conversion library.
type DeckBuilder interface {
	BuildDeck(ctx context.Context, sources []string, opts html2deck.DeckOptions) (*html2deck.DeckResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ DeckBuilder = (*html2deck.Converter)(nil)

// run executes the deck build and returns the process exit code.
func run(args []string, env *Environment) (int, error) {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return ExitUsage, err
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "html2deck %s\n", Version)
		return ExitSuccess, nil
	}

	logger, err := buildLogger(flags.verbose, flags.quiet)
	if err != nil {
		return ExitGeneral, err
	}
	defer func() { _ = logger.Sync() }()
	env.Logger = logger

	if err := html2deck.ValidateWorkers(flags.workers); err != nil {
		return ExitUsage, err
	}

	// Load configuration; a missing --config means defaults.
	cfg := env.Config
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return exitCodeFor(err), fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlagsIntoConfig(flags, positional, cfg)

	if cfg.Slides.InputDir == "" {
		return ExitUsage, ErrNoInput
	}

	sources, err := discoverSlides(cfg.Slides.InputDir, cfg.Slides.IndexFile)
	if err != nil {
		return exitCodeFor(err), err
	}
	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Found %d slide(s) in %s\n", len(sources), cfg.Slides.InputDir)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	builder := newConverter(cfg, logger)
	defer func() { _ = builder.Close() }()

	opts := deckOptions(cfg, flags, env.Now())
	deck, err := builder.BuildDeck(ctx, sources, opts)
	printResults(deck, env, flags)
	if err != nil {
		return exitCodeFor(err), err
	}

	if !flags.quiet && deck.MergedPath != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", deck.MergedPath)
	}
	return ExitSuccess, nil
}

// newConverter builds the library converter from config.
func newConverter(cfg *config.Config, logger *zap.Logger) *html2deck.Converter {
	opts := []html2deck.Option{
		html2deck.WithNavigationTimeout(cfg.NavigationTimeout()),
		html2deck.WithReadinessBudget(cfg.ReadinessBudget()),
		html2deck.WithSettleDelay(cfg.SettleDelay()),
		html2deck.WithLogger(logger),
	}
	if cfg.Browser.Workers > 0 {
		opts = append(opts, html2deck.WithWorkers(cfg.Browser.Workers))
	}
	if cfg.Browser.Bin != "" {
		opts = append(opts, html2deck.WithBrowserBin(cfg.Browser.Bin))
	}
	return html2deck.NewConverter(opts...)
}

// mergeFlagsIntoConfig merges CLI flags into config. CLI values override
// config values; the first positional argument is the slides directory.
func mergeFlagsIntoConfig(flags *deckFlags, positional []string, cfg *config.Config) {
	if len(positional) > 0 {
		cfg.Slides.InputDir = positional[0]
	}
	if flags.input != "" {
		cfg.Slides.InputDir = flags.input
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.browserBin != "" {
		cfg.Browser.Bin = flags.browserBin
	}
	if flags.workers > 0 {
		cfg.Browser.Workers = flags.workers
	}
	if flags.requireAll {
		cfg.Output.MergePartial = false
	}
	if flags.noMerge {
		cfg.Output.SkipMerge = true
	}
	if flags.keepPages {
		cfg.Output.CleanupPages = false
	}
}

// deckOptions maps config onto the library's deck options.
func deckOptions(cfg *config.Config, flags *deckFlags, now time.Time) html2deck.DeckOptions {
	deckName := flags.deckName
	if deckName == "" {
		deckName = html2deck.DefaultDeckName(now)
	}

	page := html2deck.DefaultPageSpec()
	page.WidthMM = cfg.Page.WidthMM
	page.HeightMM = cfg.Page.HeightMM
	page.Margins = html2deck.PageMargins{
		Top:    cfg.Page.MarginMM,
		Right:  cfg.Page.MarginMM,
		Bottom: cfg.Page.MarginMM,
		Left:   cfg.Page.MarginMM,
	}
	page.PrintBackground = cfg.Page.PrintBackground
	page.Landscape = cfg.Page.Landscape
	page.Scale = cfg.Page.Scale

	return html2deck.DeckOptions{
		WorkDir:    filepath.Join(cfg.Output.Dir, "pages"),
		OutputPath: filepath.Join(cfg.Output.Dir, deckName),
		Page:       page,
		Policy: html2deck.MergePolicy{
			RequireAll: !cfg.Output.MergePartial,
			SkipMerge:  cfg.Output.SkipMerge,
		},
		CleanupPages: cfg.Output.CleanupPages,
	}
}

// printResults writes the per-page report.
func printResults(deck *html2deck.DeckResult, env *Environment, flags *deckFlags) {
	if deck == nil {
		return
	}

	for _, r := range deck.Results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED page %d: %v\n", r.Index+1, r.Err)
			continue
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "page %d -> %s (%v)\n", r.Index+1, r.OutputPath, r.Duration.Round(time.Millisecond))
		}
	}

	if !flags.quiet && len(deck.Results) > 0 {
		fmt.Fprintf(env.Stdout, "%d succeeded, %d failed\n", deck.Succeeded(), len(deck.Results)-deck.Succeeded())
	}
}
