// Package tag recognizes the two snippet annotation syntaxes.
//
// A display snippet is delimited by standalone marker lines:
//
//	-- <name>
//	...content...
//	-- </name>
//
// An inline snippet is a sub-span of a single line:
//
//	{- <name> -}content{- </name> -}
//
// The marker set (comment leader and inline delimiters) is a Grammar; the
// default is the Idris set above, and alternatives can be loaded from YAML.
package tag

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Grammar is the marker set for the two annotation syntaxes.
type Grammar struct {
	// CommentLeader starts a display marker line, e.g. "--".
	CommentLeader string
	// InlineOpen opens an inline marker, e.g. "{-".
	InlineOpen string
	// InlineClose closes an inline marker, e.g. "-}".
	InlineClose string
}

// DefaultGrammar returns the Idris marker set.
func DefaultGrammar() Grammar {
	return Grammar{
		CommentLeader: "--",
		InlineOpen:    "{-",
		InlineClose:   "-}",
	}
}

// yamlGrammar maps the grammar file fields onto Grammar.
type yamlGrammar struct {
	CommentLeader string `yaml:"comment_leader"`
	InlineOpen    string `yaml:"inline_open"`
	InlineClose   string `yaml:"inline_close"`
}

// yamlGrammarFile is the top-level structure of a grammar YAML file.
type yamlGrammarFile struct {
	Grammar yamlGrammar `yaml:"grammar"`
}

// LoadGrammar parses a grammar from YAML bytes. Fields left empty keep
// their defaults.
func LoadGrammar(data []byte) (Grammar, error) {
	var file yamlGrammarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Grammar{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	g := DefaultGrammar()
	if file.Grammar.CommentLeader != "" {
		g.CommentLeader = file.Grammar.CommentLeader
	}
	if file.Grammar.InlineOpen != "" {
		g.InlineOpen = file.Grammar.InlineOpen
	}
	if file.Grammar.InlineClose != "" {
		g.InlineClose = file.Grammar.InlineClose
	}
	return g, nil
}

// LoadGrammarFile loads a grammar from a YAML file path.
func LoadGrammarFile(path string) (Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grammar{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return LoadGrammar(data)
}
