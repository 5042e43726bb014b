package lint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplshn/clex/pkg/config"
	"github.com/xplshn/clex/pkg/diag"
	"github.com/xplshn/clex/pkg/scanner"
	"github.com/xplshn/clex/pkg/token"
)

func run(t *testing.T, cfg *config.Config, src string) (*diag.Reporter, string) {
	t.Helper()
	var buf bytes.Buffer
	rep := diag.NewReporter(&buf, false)
	rep.SetCaret(false)
	for _, tok := range scanner.Tokenize([]byte(src), "l.c", rep.Error) {
		Check(cfg, rep, tok)
	}
	return rep, buf.String()
}

func TestDollarIdentifier(t *testing.T) {
	cfg := config.NewConfig()
	rep, out := run(t, cfg, "int a$b;")
	assert.Equal(t, 1, rep.WarningCount())
	assert.Equal(t, "l.c:1:6: warning: '$' in identifier 'a$b' is not standard C [-Wdollar]\n", out)

	cfg.SetWarning(config.WarnDollar, false)
	rep, _ = run(t, cfg, "int a$b;")
	assert.Zero(t, rep.WarningCount())
}

func TestOctal(t *testing.T) {
	cfg := config.NewConfig()
	rep, _ := run(t, cfg, "x = 017 + 0;")
	assert.Zero(t, rep.WarningCount())

	require.NoError(t, cfg.ApplyFlag("-Woctal"))
	rep, out := run(t, cfg, "x = 017 + 0;")
	assert.Equal(t, 1, rep.WarningCount())
	assert.Contains(t, out, "octal literal 017 is 15 in decimal [-Woctal]")
}

func TestOverflow(t *testing.T) {
	cfg := config.NewConfig()
	rep, out := run(t, cfg, "18446744073709551615 18446744073709551616 0x1ffffffffffffffff 0b1")
	assert.Equal(t, 2, rep.WarningCount())
	assert.Contains(t, out, "l.c:1:22: warning: integer constant 18446744073709551616 does not fit in 64 bits")
	assert.Contains(t, out, "0x1ffffffffffffffff does not fit")
}

func TestValue(t *testing.T) {
	tests := []struct {
		kind token.Kind
		lit  string
		want uint64
	}{
		{token.Hex, "0x1A", 26},
		{token.Binary, "0b101", 5},
		{token.Octal, "017", 15},
		{token.Octal, "0", 0},
		{token.Integer, "42", 42},
	}
	for _, tc := range tests {
		v, err := Value(token.Token{Kind: tc.kind, Lit: tc.lit})
		require.NoError(t, err, tc.lit)
		assert.Equal(t, tc.want, v, tc.lit)
	}

	_, err := Value(token.Token{Kind: token.DoubleNumber, Lit: "1.5"})
	assert.Error(t, err)
}
