package tag

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Matcher is a compiled Grammar.
type Matcher struct {
	grammar     Grammar
	displayOpen *regexp.Regexp
	inline      *regexp2.Regexp
}

// NewMatcher compiles the grammar's patterns.
func NewMatcher(g Grammar) (*Matcher, error) {
	if g.CommentLeader == "" || g.InlineOpen == "" || g.InlineClose == "" {
		return nil, fmt.Errorf("grammar has empty markers")
	}

	displayOpen, err := regexp.Compile(fmt.Sprintf(`^%s\s*<(\w+)>\s*$`, regexp.QuoteMeta(g.CommentLeader)))
	if err != nil {
		return nil, fmt.Errorf("compiling display open pattern: %w", err)
	}

	// The inline pattern needs a lazy quantifier and a backreference to the
	// tag name, neither of which stdlib regexp supports.
	inlinePat := fmt.Sprintf(`%[1]s\s*<(\w+)>\s*%[2]s(.*?)%[1]s\s*</\1>\s*%[2]s`,
		regexp2.Escape(g.InlineOpen), regexp2.Escape(g.InlineClose))
	inline, err := regexp2.Compile(inlinePat, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling inline pattern: %w", err)
	}
	// Timeout guards against catastrophic backtracking on hostile input.
	inline.MatchTimeout = 5 * time.Second

	return &Matcher{
		grammar:     g,
		displayOpen: displayOpen,
		inline:      inline,
	}, nil
}

// Grammar returns the marker set this matcher was compiled from.
func (m *Matcher) Grammar() Grammar { return m.grammar }

// MatchDisplayOpen reports the tag name if the line, after trimming
// surrounding whitespace, is exactly an opening display marker.
func (m *Matcher) MatchDisplayOpen(line string) (string, bool) {
	sub := m.displayOpen.FindStringSubmatch(strings.TrimSpace(line))
	if sub == nil {
		return "", false
	}
	return sub[1], true
}

// Closer matches the closing display marker for one specific tag name.
type Closer struct {
	re *regexp.Regexp
}

// DisplayCloser compiles the closing-marker pattern for name.
func (m *Matcher) DisplayCloser(name string) Closer {
	// name is \w+ so QuoteMeta is a formality, but keep the pattern total.
	pat := `^` + regexp.QuoteMeta(m.grammar.CommentLeader) + `\s*</` + regexp.QuoteMeta(name) + `>\s*$`
	return Closer{re: regexp.MustCompile(pat)}
}

// Match reports whether the trimmed line is the closing marker.
func (c Closer) Match(line string) bool {
	return c.re.MatchString(strings.TrimSpace(line))
}

// InlineSpan is one inline marker pair found on a line. Offsets are
// 0-indexed character (rune) columns, not byte offsets.
type InlineSpan struct {
	Name string
	// Start is the column immediately after the opening marker's closing
	// delimiter.
	Start int
	// End is the column of the closing marker's opening delimiter.
	End int
}

// FindInline returns all non-overlapping inline spans on the line, left to
// right. The span boundaries are recovered from the matched text by pure
// offset arithmetic: the first closing delimiter ends the opening marker,
// and the last opening delimiter starts the closing marker. regexp2 match
// indices count runes, so both boundaries are converted to rune columns.
func (m *Matcher) FindInline(line string) ([]InlineSpan, error) {
	var spans []InlineSpan

	match, err := m.inline.FindStringMatch(line)
	if err != nil {
		return nil, fmt.Errorf("inline match error: %w", err)
	}

	for match != nil {
		name := match.Groups()[1].Captures[0].String()
		text := match.String()

		openerEnd := strings.Index(text, m.grammar.InlineClose) + len(m.grammar.InlineClose)
		closerStart := strings.LastIndex(text, m.grammar.InlineOpen)

		spans = append(spans, InlineSpan{
			Name:  name,
			Start: match.Index + utf8.RuneCountInString(text[:openerEnd]),
			End:   match.Index + utf8.RuneCountInString(text[:closerStart]),
		})

		match, err = m.inline.FindNextMatch(match)
		if err != nil {
			return nil, fmt.Errorf("inline match error: %w", err)
		}
	}

	return spans, nil
}
