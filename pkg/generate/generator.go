// Package generate orchestrates snippet extraction and rendering across
// file pairs and assembles the combined macro document.
package generate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kontheocharis/katla-locations/pkg/locate"
	"github.com/kontheocharis/katla-locations/pkg/logging"
	"github.com/kontheocharis/katla-locations/pkg/render"
	"github.com/kontheocharis/katla-locations/pkg/tag"
	"github.com/kontheocharis/katla-locations/pkg/types"
)

// header opens every combined document.
const header = "% Generated LaTeX macros for all source files\n% Generated by katla-gen\n\n"

// FilePair is one source file with its companion metadata (ttm) file.
type FilePair struct {
	Source   string
	Metadata string
}

// Result is the outcome of one run. It is the only accumulating state of a
// run and is owned entirely by the caller.
type Result struct {
	// Document is the combined macro document, header included.
	Document string
	// Total counts every snippet discovered across all pairs.
	Total int
	// Succeeded counts snippets whose dispatch produced real output.
	Succeeded int
}

// Complete reports whether every discovered snippet rendered successfully.
func (r *Result) Complete() bool { return r.Succeeded == r.Total }

// Observer is notified once per file pair with the located snippets, before
// any of them is dispatched. Used by dry-run reporting.
type Observer func(pair FilePair, lines []string, snippets []types.Snippet)

// Config configures a Generator.
type Config struct {
	// Matcher is the compiled annotation grammar.
	Matcher *tag.Matcher
	// KatlaPath is the renderer binary, "katla" if empty.
	KatlaPath string
	// DryRun plans invocations without executing them and waives the
	// metadata-file existence check.
	DryRun bool
	// Observer, if set, is called once per located file pair.
	Observer Observer
}

// Generator processes file pairs sequentially: one pair at a time, one
// snippet (and one blocking renderer process) at a time.
type Generator struct {
	locator    *locate.Locator
	dispatcher *render.Dispatcher
	observer   Observer
	dryRun     bool
	log        zerolog.Logger
}

// New creates a Generator.
func New(cfg Config) *Generator {
	katla := cfg.KatlaPath
	if katla == "" {
		katla = "katla"
	}
	return &Generator{
		locator:    locate.New(cfg.Matcher),
		dispatcher: render.NewDispatcher(katla, cfg.DryRun),
		observer:   cfg.Observer,
		dryRun:     cfg.DryRun,
		log:        logging.GetLogger("generate"),
	}
}

// Run processes the pairs in order and assembles the combined document.
// Per-pair and per-snippet failures are recovered locally; the caller
// inspects Result.Complete for the run verdict.
func (g *Generator) Run(ctx context.Context, pairs []FilePair) *Result {
	res := &Result{}

	var doc strings.Builder
	doc.WriteString(header)

	for _, pair := range pairs {
		g.log.Info().Str("source", pair.Source).Str("metadata", pair.Metadata).Msg("processing pair")

		content, err := os.ReadFile(pair.Source)
		if err != nil {
			g.log.Error().Err(err).Str("source", pair.Source).Msg("skipping pair: source file not readable")
			continue
		}
		if !g.dryRun {
			if _, err := os.Stat(pair.Metadata); err != nil {
				g.log.Error().Err(err).Str("metadata", pair.Metadata).Msg("skipping pair: metadata file not found")
				continue
			}
		}

		snippets, diags := g.locator.LocateContent(content)
		for _, d := range diags {
			g.log.Warn().Str("source", pair.Source).Int("line", d.Line).Msg(d.Message)
		}
		g.log.Info().Str("source", pair.Source).Int("count", len(snippets)).Msg("found snippets")

		res.Total += len(snippets)

		if g.observer != nil {
			g.observer(pair, types.SplitLines(content), snippets)
		}

		if len(snippets) == 0 {
			continue
		}

		doc.WriteString(fmt.Sprintf("%% Macros from %s\n", pair.Source))
		for _, s := range snippets {
			fragment, ok := g.dispatcher.Dispatch(ctx, s, pair.Source, pair.Metadata)
			if ok {
				res.Succeeded++
			}
			doc.WriteString(fragment)
			if !strings.HasSuffix(fragment, "\n") {
				doc.WriteString("\n")
			}
		}
		doc.WriteString("\n")
	}

	res.Document = doc.String()
	return res
}
