// Package katlaloc locates named source-code excerpts ("snippets") in
// annotated source files and drives the katla macro generator over them.
//
// Two annotation styles are recognized. Display snippets span whole lines
// between standalone comment markers:
//
//	-- <example>
//	add : Nat -> Nat -> Nat
//	-- </example>
//
// Inline snippets span part of a single line between paired inline markers:
//
//	f x = {- <body> -}x + 1{- </body> -}
//
// # Basic Usage
//
// Create a parser and locate snippets in a file:
//
//	parser, err := katlaloc.NewParser()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	snippets, diags, err := parser.ParseFile("Example.idr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, s := range snippets {
//	    fmt.Printf("%s (%s)\n", s.SnippetName(), s.Kind())
//	}
//
// Use the generate package to render located snippets with katla and
// assemble the combined macro document.
package katlaloc

import (
	"fmt"
	"os"

	"github.com/kontheocharis/katla-locations/pkg/generate"
	"github.com/kontheocharis/katla-locations/pkg/locate"
	"github.com/kontheocharis/katla-locations/pkg/tag"
	"github.com/kontheocharis/katla-locations/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/kontheocharis/katla-locations" without
// subpackages.
type (
	// Snippet is a located excerpt, either display or inline.
	Snippet = types.Snippet

	// DisplaySnippet is a whole-line excerpt between standalone markers.
	DisplaySnippet = types.DisplaySnippet

	// InlineSnippet is a sub-span of one line between inline markers.
	InlineSnippet = types.InlineSnippet

	// Grammar is the marker set defining the two annotation syntaxes.
	Grammar = tag.Grammar

	// Diagnostic is a non-fatal parse warning.
	Diagnostic = locate.Diagnostic

	// FilePair is a source file with its companion metadata file.
	FilePair = generate.FilePair

	// Result is the outcome of a generation run.
	Result = generate.Result
)

// Re-export the variant discriminators.
const (
	KindDisplay = types.KindDisplay
	KindInline  = types.KindInline
)

// Parser locates snippets in annotated source text.
type Parser struct {
	locator *locate.Locator
}

// parserConfig holds parser configuration.
type parserConfig struct {
	grammar tag.Grammar
}

// Option configures a Parser.
type Option func(*parserConfig)

// WithGrammar uses a custom marker set instead of the default Idris set.
func WithGrammar(g Grammar) Option {
	return func(c *parserConfig) {
		c.grammar = g
	}
}

// NewParser creates a Parser. By default it recognizes the Idris marker
// set: "--" comment leader and "{- -}" inline delimiters.
func NewParser(opts ...Option) (*Parser, error) {
	config := &parserConfig{
		grammar: tag.DefaultGrammar(),
	}
	for _, opt := range opts {
		opt(config)
	}

	m, err := tag.NewMatcher(config.grammar)
	if err != nil {
		return nil, fmt.Errorf("compiling grammar: %w", err)
	}

	return &Parser{locator: locate.New(m)}, nil
}

// ParseString locates all snippets in content. Display snippets come
// first, in opening-marker order, then inline snippets in file order.
func (p *Parser) ParseString(content string) ([]Snippet, []Diagnostic) {
	return p.ParseBytes([]byte(content))
}

// ParseBytes locates all snippets in raw content.
func (p *Parser) ParseBytes(content []byte) ([]Snippet, []Diagnostic) {
	return p.locator.LocateContent(content)
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) ([]Snippet, []Diagnostic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading file: %w", err)
	}
	snippets, diags := p.ParseBytes(content)
	return snippets, diags, nil
}
