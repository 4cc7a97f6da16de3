package locate

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/kontheocharis/katla-locations/pkg/tag"
)

// Prefilter uses Aho-Corasick keyword matching to decide which grammar
// passes can possibly match a file at all. Skipping a pass is behavior
// neutral: a pass is only skipped when its marker bytes never occur.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	display  map[string]bool // keyword -> enables display pass
	inline   map[string]bool // keyword -> enables inline pass
}

// NewPrefilter builds a prefilter for the grammar's marker set.
func NewPrefilter(g tag.Grammar) *Prefilter {
	pf := &Prefilter{
		display: map[string]bool{g.CommentLeader: true},
		inline:  map[string]bool{g.InlineOpen: true},
	}

	seen := make(map[string]bool)
	for _, kw := range []string{g.CommentLeader, g.InlineOpen} {
		if !seen[kw] {
			seen[kw] = true
			pf.keywords = append(pf.keywords, kw)
		}
	}
	pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)

	return pf
}

// Passes reports which grammar passes can produce matches in content.
func (pf *Prefilter) Passes(content []byte) (display, inline bool) {
	for _, hit := range pf.matcher.Match(content) {
		kw := pf.keywords[hit]
		if pf.display[kw] {
			display = true
		}
		if pf.inline[kw] {
			inline = true
		}
	}
	return display, inline
}
