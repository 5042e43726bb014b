package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{Illegal, "ILLEGAL"},
		{EOF, "EOF"},
		{Ident, "IDENT"},
		{Octal, "OCTAL"},
		{Hex, "HEX"},
		{Binary, "BINARY"},
		{Integer, "INTEGER"},
		{FloatNumber, "FLOAT"},
		{DoubleNumber, "DOUBLE"},
		{ShlEq, "<<="},
		{Arrow, "->"},
		{Dots, "..."},
		{Semi, ";"},
		{Float, "float"},
		{Double, "double"},
		{Typedef, "typedef"},
		{While, "while"},
		{Kind(999), "Kind(999)"},
		{Kind(-1), "Kind(-1)"},
		{literalBeg, "Kind(2)"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.kind.String())
	}
}

func TestEveryKindHasText(t *testing.T) {
	t.Parallel()

	seen := make(map[string]Kind)
	for k := Illegal; k < keywordEnd; k++ {
		if k == literalBeg || k == literalEnd || k == operatorBeg || k == operatorEnd || k == keywordBeg {
			continue
		}
		s := k.String()
		require.NotContains(t, s, "Kind(", "kind %d has no text", int(k))
		if prev, dup := seen[s]; dup {
			t.Fatalf("%q used by both %d and %d", s, int(prev), int(k))
		}
		seen[s] = k
		assert.Equal(t, k, KindStrings[s])
	}
	assert.Len(t, KeywordMap, 34)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for kw, k := range KeywordMap {
		assert.Equal(t, k, Lookup(kw))
		assert.True(t, k.IsKeyword())
		assert.Equal(t, kw, k.String())
	}
	for _, ident := range []string{"x", "If", "INT", "int1", "_while", "returns", ""} {
		assert.Equal(t, Ident, Lookup(ident), ident)
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, Ident.IsLiteral())
	assert.False(t, Ident.IsNumber())
	assert.True(t, DoubleNumber.IsNumber())
	assert.False(t, DoubleNumber.IsInteger())
	assert.True(t, Hex.IsInteger())
	assert.True(t, Octal.IsInteger())
	assert.True(t, Semi.IsOperator())
	assert.False(t, Semi.IsKeyword())
	assert.False(t, EOF.IsLiteral())
	assert.False(t, Illegal.IsOperator())
	assert.True(t, Auto.IsKeyword())
}

func TestKindText(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{Illegal, EOF, Integer, PlusEq, Double} {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}

	_, err := Kind(500).MarshalText()
	assert.Error(t, err)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("nope")))
}

func TestPositionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.c:3:7", Position{Filename: "a.c", Offset: 20, Line: 3, Column: 7}.String())
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
	assert.Equal(t, "a.c", Position{Filename: "a.c"}.String())
	assert.Equal(t, "-", Position{}.String())
	assert.False(t, Position{}.IsValid())
}
