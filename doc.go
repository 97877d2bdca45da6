// Package html2deck renders HTML slide documents to fixed-size PDF pages
// using headless Chrome and assembles them into a single deck document.
//
// # Quick Start
//
// Create a converter, build a deck from slide files, and close when done:
//
//	conv := html2deck.NewConverter()
//	defer conv.Close()
//
//	deck, err := conv.BuildDeck(ctx, []string{"slide_1.html", "slide_2.html"}, html2deck.DeckOptions{
//	    WorkDir:    "out/pages",
//	    OutputPath: "out/presentation.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(deck.MergedPath)
//
// # Pipeline
//
// Each input goes through the same stages:
//
//  1. A page context is opened in a shared headless Chrome session (go-rod)
//     with a fixed 1280x720 viewport.
//  2. The document is loaded from a file:// URL with a bounded navigation wait.
//  3. A best-effort readiness wait lets images and fonts finish loading.
//  4. The page is captured to a PDF with exact physical dimensions.
//
// Successful pages are merged, in input order, into one PDF. A failed page
// never aborts the batch; per-page outcomes are reported in RenderResults
// and the merge policy decides whether a partial deck is acceptable.
//
// The final PDF-to-presentation conversion is out of scope: callers may
// plug an external engine in as a DocumentConverter, which receives the
// merged PDF path and returns the path of the converted artifact.
//
// Browser resources are released with Close. One Converter owns at most one
// browser process; use ConverterPool to run independent batches in parallel.
package html2deck
