package types

import "strings"

// SplitLines splits content into lines with terminators stripped.
// A trailing newline does not produce a final empty line, and a trailing
// carriage return is removed from each line so CRLF sources yield the same
// column offsets as LF sources.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
