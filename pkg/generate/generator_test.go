package generate

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontheocharis/katla-locations/pkg/tag"
	"github.com/kontheocharis/katla-locations/pkg/types"
)

func testMatcher(t *testing.T) *tag.Matcher {
	t.Helper()
	m, err := tag.NewMatcher(tag.DefaultGrammar())
	require.NoError(t, err)
	return m
}

// writePair creates a source file with the given content and an empty
// companion ttm file, returning the pair.
func writePair(t *testing.T, dir, name, content string) FilePair {
	t.Helper()
	src := filepath.Join(dir, name+".idr")
	ttm := filepath.Join(dir, name+".ttm")
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))
	require.NoError(t, os.WriteFile(ttm, nil, 0o644))
	return FilePair{Source: src, Metadata: ttm}
}

// fakeKatla writes a shell script standing in for the katla binary.
func fakeKatla(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "katla")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestRun_AllSucceed(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Example", "-- <foo>\nadd x y = x + y\n-- </foo>\nv = {- <bar> -}1{- </bar> -}\n")
	katla := fakeKatla(t, `printf '%%%% macro %s\n' "$3" "$4" | head -1`)

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{pair})

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.True(t, res.Complete())
}

func TestRun_DocumentLayout(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Example", "-- <foo>\nbody\n-- </foo>\n")
	katla := fakeKatla(t, `printf '%%%% macro %s\n' "$3"`)

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{pair})

	lines := strings.Split(res.Document, "\n")
	assert.Equal(t, "% Generated LaTeX macros for all source files", lines[0])
	assert.Equal(t, "% Generated by katla-gen", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "% Macros from "+pair.Source, lines[3])
	assert.Equal(t, "%% macro foo", lines[4])
	assert.Equal(t, "", lines[5])
}

func TestRun_FragmentOrder(t *testing.T) {
	dir := t.TempDir()
	// Second pair first in argument order must come first in the document;
	// within a file, display snippets precede inline ones.
	a := writePair(t, dir, "A", "x = {- <a_inline> -}1{- </a_inline> -}\n-- <a_display>\ny\n-- </a_display>\n")
	b := writePair(t, dir, "B", "-- <b_display>\nz\n-- </b_display>\n")
	katla := fakeKatla(t, `printf '%%%% macro %s\n' "$3$4" | head -1`)

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{a, b})

	doc := res.Document
	displayA := strings.Index(doc, "a_display")
	inlineA := strings.Index(doc, "a_inline")
	displayB := strings.Index(doc, "b_display")
	require.GreaterOrEqual(t, displayA, 0)
	assert.Less(t, displayA, inlineA)
	assert.Less(t, inlineA, displayB)
}

func TestRun_FailedSnippetIsIsolated(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Example", "-- <bad>\nx\n-- </bad>\n-- <good>\ny\n-- </good>\n")
	// Fail for the snippet named "bad", succeed otherwise.
	katla := fakeKatla(t, "if [ \"$3\" = bad ]; then exit 1; fi\nprintf '%%%% macro %s\\n' \"$3\"")

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{pair})

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.False(t, res.Complete())

	// The placeholder keeps the failed snippet's slot in the document.
	assert.Contains(t, res.Document, "% Error generating macro for bad\n")
	assert.Contains(t, res.Document, "%% macro good\n")
}

func TestRun_MissingSourceSkipsPair(t *testing.T) {
	dir := t.TempDir()
	good := writePair(t, dir, "Good", "-- <foo>\nx\n-- </foo>\n")
	missing := FilePair{Source: filepath.Join(dir, "nope.idr"), Metadata: good.Metadata}
	katla := fakeKatla(t, `printf '%%%% macro %s\n' "$3"`)

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{missing, good})

	// The missing pair contributes zero snippets; the other pair is intact.
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.NotContains(t, res.Document, "nope.idr")
}

func TestRun_MissingMetadataSkipsPair(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Example", "-- <foo>\nx\n-- </foo>\n")
	pair.Metadata = filepath.Join(dir, "nope.ttm")
	katla := fakeKatla(t, `printf 'never\n'`)

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{pair})

	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.Succeeded)
	assert.True(t, res.Complete())
}

func TestRun_DryRun(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Example", "-- <foo>\nx\n-- </foo>\n")
	// Metadata existence is waived in dry-run mode.
	pair.Metadata = filepath.Join(dir, "nope.ttm")

	var observed []types.Snippet
	g := New(Config{
		Matcher: testMatcher(t),
		DryRun:  true,
		Observer: func(p FilePair, lines []string, snippets []types.Snippet) {
			observed = append(observed, snippets...)
		},
	})
	res := g.Run(context.Background(), []FilePair{pair})

	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	require.Len(t, observed, 1)
	assert.Equal(t, "foo", observed[0].SnippetName())
	assert.Contains(t, res.Document, "% Dry run - would generate macro for foo\n")
}

func TestRun_NoSnippetsNoFileComment(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Plain", "module Plain\nf x = x\n")
	katla := fakeKatla(t, "exit 1")

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{pair})

	assert.Equal(t, 0, res.Total)
	assert.NotContains(t, res.Document, "% Macros from")
}

func TestRun_UnclosedTagIsDiagnosticOnly(t *testing.T) {
	dir := t.TempDir()
	pair := writePair(t, dir, "Example", "-- <orphan>\nx\n")
	katla := fakeKatla(t, "exit 1")

	g := New(Config{Matcher: testMatcher(t), KatlaPath: katla})
	res := g.Run(context.Background(), []FilePair{pair})

	assert.Equal(t, 0, res.Total)
	assert.True(t, res.Complete())
}
