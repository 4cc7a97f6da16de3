// Package locate turns annotated source text into snippet records.
package locate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kontheocharis/katla-locations/pkg/logging"
	"github.com/kontheocharis/katla-locations/pkg/tag"
	"github.com/kontheocharis/katla-locations/pkg/types"
)

// Diagnostic is a non-fatal parse warning, such as an unclosed display
// marker. Diagnostics never abort a scan.
type Diagnostic struct {
	Line    int // 1-indexed
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Locator scans line lists for snippets. It is a pure function of its
// input: it never mutates the lines and holds no scan state between calls.
type Locator struct {
	matcher   *tag.Matcher
	prefilter *Prefilter
	log       zerolog.Logger
}

// New creates a locator for the matcher's grammar.
func New(m *tag.Matcher) *Locator {
	return &Locator{
		matcher:   m,
		prefilter: NewPrefilter(m.Grammar()),
		log:       logging.GetLogger("locate"),
	}
}

// LocateContent splits content into lines and locates all snippets,
// consulting the prefilter to skip grammar passes whose markers cannot
// occur in the content.
func (l *Locator) LocateContent(content []byte) ([]types.Snippet, []Diagnostic) {
	lines := types.SplitLines(content)
	display, inline := l.prefilter.Passes(content)
	return l.locate(lines, display, inline)
}

// Locate locates all snippets in lines: every display snippet in opening
// marker order, then every inline snippet in file order.
func (l *Locator) Locate(lines []string) ([]types.Snippet, []Diagnostic) {
	return l.locate(lines, true, true)
}

func (l *Locator) locate(lines []string, display, inline bool) ([]types.Snippet, []Diagnostic) {
	var snippets []types.Snippet
	var diags []Diagnostic

	if display {
		snippets, diags = l.displayPass(lines, snippets, diags)
	}
	if inline {
		snippets, diags = l.inlinePass(lines, snippets, diags)
	}

	l.log.Debug().
		Int("snippets", len(snippets)).
		Int("diagnostics", len(diags)).
		Msg("scan complete")

	return snippets, diags
}

// displayPass finds display snippets top to bottom. Each opening marker is
// paired with the first matching closing marker strictly after it; an
// opener with no closer yields a diagnostic and no record.
func (l *Locator) displayPass(lines []string, snippets []types.Snippet, diags []Diagnostic) ([]types.Snippet, []Diagnostic) {
	for i, line := range lines {
		name, ok := l.matcher.MatchDisplayOpen(line)
		if !ok {
			continue
		}

		closer := l.matcher.DisplayCloser(name)
		found := false
		for j := i + 1; j < len(lines); j++ {
			if closer.Match(lines[j]) {
				snippets = append(snippets, types.DisplaySnippet{
					Name:       name,
					LineOffset: i + 1,
					LineCount:  j - i - 1,
				})
				found = true
				break
			}
		}

		if !found {
			diags = append(diags, Diagnostic{
				Line:    i + 1,
				Message: fmt.Sprintf("unclosed display tag '<%s>'", name),
			})
		}
	}
	return snippets, diags
}

// inlinePass finds inline snippets on every line, left to right. Lines
// inside display snippets are scanned too; the two grammars do not exclude
// each other.
func (l *Locator) inlinePass(lines []string, snippets []types.Snippet, diags []Diagnostic) ([]types.Snippet, []Diagnostic) {
	for i, line := range lines {
		spans, err := l.matcher.FindInline(line)
		if err != nil {
			diags = append(diags, Diagnostic{
				Line:    i + 1,
				Message: err.Error(),
			})
			continue
		}
		for _, span := range spans {
			snippets = append(snippets, types.InlineSnippet{
				Name:        span.Name,
				LineOffset:  i + 1,
				ColumnStart: span.Start,
				ColumnEnd:   span.End,
			})
		}
	}
	return snippets, diags
}
