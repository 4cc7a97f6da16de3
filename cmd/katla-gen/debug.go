package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/kontheocharis/katla-locations/pkg/generate"
	"github.com/kontheocharis/katla-locations/pkg/types"
)

// colorEnabled resolves the --color tri-state. Auto means a terminal on
// stdout and no NO_COLOR in the environment.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// styles holds color formatters for the dry-run snippet dump.
type styles struct {
	name    *color.Color
	kind    *color.Color
	heading *color.Color
	content *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		name:    color.New(color.Bold, color.FgHiBlue),
		kind:    color.New(color.FgHiGreen),
		heading: color.New(color.Bold),
		content: color.New(color.FgYellow),
	}

	if !enabled {
		s.name.DisableColor()
		s.kind.DisableColor()
		s.heading.DisableColor()
		s.content.DisableColor()
	}

	return s
}

// snippetDumper prints located snippets with their re-sliced content.
type snippetDumper struct {
	out    io.Writer
	styles *styles
}

func newSnippetDumper(out io.Writer, colored bool) *snippetDumper {
	return &snippetDumper{out: out, styles: newStyles(colored)}
}

// dump is a generate.Observer printing every snippet of a file pair.
func (d *snippetDumper) dump(pair generate.FilePair, lines []string, snippets []types.Snippet) {
	fmt.Fprintf(d.out, "Found %d snippets in %s:\n", len(snippets), pair.Source)
	for _, s := range snippets {
		d.dumpSnippet(pair.Source, lines, s)
	}
}

func (d *snippetDumper) dumpSnippet(src string, lines []string, s types.Snippet) {
	fmt.Fprintf(d.out, "Snippet: %s (%s)\n",
		d.styles.name.Sprint(s.SnippetName()), d.styles.kind.Sprint(s.Kind()))
	fmt.Fprintf(d.out, "  File: %s\n", src)

	switch s := s.(type) {
	case types.DisplaySnippet:
		fmt.Fprintf(d.out, "  Line offset: %d\n", s.LineOffset)
		fmt.Fprintf(d.out, "  Line count: %d\n", s.LineCount)
		fmt.Fprintf(d.out, "  %s\n", d.styles.heading.Sprint("Content:"))
		end := s.LineOffset + s.LineCount
		if end > len(lines) {
			end = len(lines)
		}
		for i := s.LineOffset; i < end; i++ {
			fmt.Fprintf(d.out, "    %d: %s\n", i+1, d.styles.content.Sprint(lines[i]))
		}
	case types.InlineSnippet:
		fmt.Fprintf(d.out, "  Line offset: %d\n", s.LineOffset)
		fmt.Fprintf(d.out, "  Column start: %d\n", s.ColumnStart)
		fmt.Fprintf(d.out, "  Column end: %d\n", s.ColumnEnd)
		line := lines[s.LineOffset-1]
		fmt.Fprintf(d.out, "  Line content: %s\n", line)
		// Column offsets count runes, so slice the rune form.
		content := string([]rune(line)[s.ColumnStart:s.ColumnEnd])
		fmt.Fprintf(d.out, "  Snippet content: '%s'\n", d.styles.content.Sprint(content))
	}

	fmt.Fprintln(d.out)
}
