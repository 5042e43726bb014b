package diag

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplshn/clex/pkg/token"
)

func TestErrorWithCaret(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.AddSource("a.c", []byte("int x;\n\tx = @;\n"))

	r.Error(token.Position{Filename: "a.c", Offset: 12, Line: 2, Column: 6}, "illegal character '@'")

	want := "a.c:2:6: error: illegal character '@'\n" +
		"  \tx = @;\n" +
		"  \t    ^\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 1, r.ErrorCount())
	require.Len(t, r.Diagnostics(), 1)
	assert.Equal(t, Error, r.Diagnostics()[0].Severity)
}

func TestErrorSpan(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.AddSource("c.c", []byte("n = 0b;"))

	r.ErrorSpan(token.Position{Filename: "c.c", Offset: 4, Line: 1, Column: 5}, 2, "binary literal has no digits")
	r.ErrorSpan(token.Position{Filename: "c.c", Offset: 6, Line: 1, Column: 7}, 0, "zero span")

	want := "c.c:1:5: error: binary literal has no digits\n" +
		"  n = 0b;\n" +
		"      ^~\n" +
		"c.c:1:7: error: zero span\n" +
		"  n = 0b;\n" +
		"        ^\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, r.ErrorCount())
}

func TestWarnSpan(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.AddSource("b.c", []byte("x = 0777;"))

	r.Warn("octal", token.Position{Filename: "b.c", Offset: 4, Line: 1, Column: 5}, 4, "octal literal %s", "0777")

	want := "b.c:1:5: warning: octal literal 0777 [-Woctal]\n" +
		"  x = 0777;\n" +
		"      ^~~~\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 1, r.WarningCount())
	assert.Equal(t, "1 warning", r.Summary())
}

func TestNoCaretWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.Error(token.Position{Filename: "missing.c", Offset: 0, Line: 1, Column: 1}, "boom")
	assert.Equal(t, "missing.c:1:1: error: boom\n", buf.String())

	buf.Reset()
	r.AddSource("c.c", []byte("@"))
	r.SetCaret(false)
	r.Error(token.Position{Filename: "c.c", Offset: 0, Line: 1, Column: 1}, "boom")
	assert.Equal(t, "c.c:1:1: error: boom\n", buf.String())
}

func TestColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)
	r.AddSource("d.c", []byte("#"))
	r.Error(token.Position{Filename: "d.c", Offset: 0, Line: 1, Column: 1}, "illegal character '#'")
	assert.Contains(t, buf.String(), "\033[31merror:\033[0m")
	assert.Contains(t, buf.String(), "\033[32m^\033[0m")
}

func TestMaxErrors(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.MaxErrors = 2
	pos := token.Position{Line: 1, Column: 1}

	r.Error(pos, "one")
	assert.False(t, r.Exhausted())
	r.Error(pos, "two")
	assert.True(t, r.Exhausted())
	r.Error(pos, "three")

	assert.Equal(t, 2, r.ErrorCount())
	assert.NotContains(t, buf.String(), "three")
	assert.Equal(t, "2 errors", r.Summary())

	r.Warn("", pos, 1, "w")
	assert.Equal(t, "2 errors and 1 warning", r.Summary())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "note", Note.String())
	assert.Equal(t, "unknown", Severity(9).String())
}

func TestStderrReporter(t *testing.T) {
	r := NewStderrReporter()
	assert.Equal(t, os.Stderr, r.Writer())
	r.SetColor(true)
	assert.True(t, r.Color())
	r.SetColor(false)
	assert.False(t, r.Color())
}
