// Package render maps snippet records onto katla invocations and executes
// them.
package render

import (
	"fmt"
	"strconv"

	"github.com/kontheocharis/katla-locations/pkg/types"
)

// Command builds the katla argv for one snippet. The numeric adjustments
// reconcile the locator's indexing convention with katla's:
//
//	display: katla latex macro NAME SRC TTM <line+1> 0 <count-1>
//	inline:  katla latex macro inline NAME SRC TTM 0 <line> <start+1> <end>
func Command(katla string, s types.Snippet, srcPath, ttmPath string) []string {
	switch s := s.(type) {
	case types.DisplaySnippet:
		return []string{
			katla, "latex", "macro",
			s.Name, srcPath, ttmPath,
			strconv.Itoa(s.LineOffset + 1),
			"0",
			strconv.Itoa(s.LineCount - 1),
		}
	case types.InlineSnippet:
		return []string{
			katla, "latex", "macro", "inline",
			s.Name, srcPath, ttmPath,
			"0",
			strconv.Itoa(s.LineOffset),
			strconv.Itoa(s.ColumnStart + 1),
			strconv.Itoa(s.ColumnEnd),
		}
	default:
		// Snippet is a closed union; a third variant is a programming error.
		panic(fmt.Sprintf("unhandled snippet variant %T", s))
	}
}

// ErrorPlaceholder is the comment substituted when rendering name failed.
func ErrorPlaceholder(name string) string {
	return fmt.Sprintf("%% Error generating macro for %s\n", name)
}

// DryRunPlaceholder is the comment substituted for name in dry-run mode.
func DryRunPlaceholder(name string) string {
	return fmt.Sprintf("%% Dry run - would generate macro for %s\n", name)
}
