package scanner

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplshn/clex/pkg/token"
)

func TestSampleFile(t *testing.T) {
	src, err := os.ReadFile("testdata/sample.c")
	require.NoError(t, err)

	errors := 0
	toks := Tokenize(src, "sample.c", func(pos token.Position, msg string) {
		errors++
		t.Errorf("%s: %s", pos, msg)
	})
	assert.Zero(t, errors)

	var joined strings.Builder
	kinds := make(map[token.Kind]int)
	for _, tok := range toks[:len(toks)-1] {
		kinds[tok.Kind]++
		joined.WriteString(tok.Lit)

		off := tok.Pos.Offset
		require.Equal(t, tok.Lit, string(src[off:off+len(tok.Lit)]))
		line := 1 + bytes.Count(src[:off], []byte("\n"))
		col := off - (bytes.LastIndexByte(src[:off], '\n') + 1) + 1
		assert.Equal(t, line, tok.Pos.Line, "line of %q at %d", tok.Lit, off)
		assert.Equal(t, col, tok.Pos.Column, "column of %q at %d", tok.Lit, off)
	}
	assert.Equal(t, strings.Join(strings.Fields(string(src)), ""), joined.String())

	eof := toks[len(toks)-1]
	assert.Equal(t, token.EOF, eof.Kind)
	assert.Equal(t, len(src), eof.Pos.Offset)

	for _, k := range []token.Kind{
		token.Typedef, token.Struct, token.Static, token.Inline, token.Unsigned,
		token.Hex, token.Binary, token.Octal, token.FloatNumber, token.DoubleNumber,
		token.ShrEq, token.Shl, token.OrEq, token.Arrow, token.AndAnd, token.Inc, token.Dots,
	} {
		assert.NotZero(t, kinds[k], "expected at least one %s", k)
	}
	assert.Equal(t, 1, kinds[token.Hex])
	assert.Equal(t, 1, kinds[token.DoubleNumber])
}
