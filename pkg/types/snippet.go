package types

import "fmt"

// Kind discriminates the two snippet variants.
type Kind int

const (
	// KindDisplay is a multi-line excerpt delimited by standalone marker lines.
	KindDisplay Kind = iota
	// KindInline is a sub-span of a single line delimited by inline markers.
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindDisplay:
		return "display"
	case KindInline:
		return "inline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Snippet is a located source excerpt. It is a closed union: the only
// implementations are DisplaySnippet and InlineSnippet, so consumers
// dispatch with an exhaustive type switch.
type Snippet interface {
	// SnippetName returns the tag identifier (a word-character token).
	SnippetName() string
	// Kind returns the variant discriminator.
	Kind() Kind

	sealed()
}

// DisplaySnippet is a whole-line excerpt between an opening marker line and
// the first matching closing marker line.
type DisplaySnippet struct {
	Name string

	// LineOffset is the 0-indexed opening-marker line plus one, which is
	// also the 0-indexed line of the first content line.
	LineOffset int

	// LineCount is the number of content lines strictly between the
	// markers. Zero for adjacent markers, never negative.
	LineCount int
}

func (s DisplaySnippet) SnippetName() string { return s.Name }
func (s DisplaySnippet) Kind() Kind          { return KindDisplay }
func (s DisplaySnippet) sealed()             {}

// InlineSnippet is a sub-span of one line between paired inline markers.
type InlineSnippet struct {
	Name string

	// LineOffset is the 1-indexed line containing the span.
	LineOffset int

	// ColumnStart is the 0-indexed character column immediately after the
	// opening marker's closing delimiter. Columns count runes, not bytes.
	ColumnStart int

	// ColumnEnd is the 0-indexed character column of the closing marker's
	// opening delimiter. Equal to ColumnStart when the span is empty.
	ColumnEnd int
}

func (s InlineSnippet) SnippetName() string { return s.Name }
func (s InlineSnippet) Kind() Kind          { return KindInline }
func (s InlineSnippet) sealed()             {}
