// Package lint reports warnings over a scanned token stream.
package lint

import (
	"errors"
	"strconv"
	"strings"

	"github.com/xplshn/clex/pkg/config"
	"github.com/xplshn/clex/pkg/diag"
	"github.com/xplshn/clex/pkg/token"
)

// Check reports every enabled warning that applies to tok.
func Check(cfg *config.Config, rep *diag.Reporter, tok token.Token) {
	switch {
	case tok.Kind == token.Ident:
		if cfg.IsWarningEnabled(config.WarnDollar) {
			if i := strings.IndexByte(tok.Lit, '$'); i >= 0 {
				pos := tok.Pos
				pos.Offset += i
				pos.Column += i
				rep.Warn(cfg.WarningName(config.WarnDollar), pos, 1, "'$' in identifier '%s' is not standard C", tok.Lit)
			}
		}
	case tok.Kind.IsInteger():
		if tok.Kind == token.Octal && tok.Lit != "0" && cfg.IsWarningEnabled(config.WarnOctal) {
			rep.Warn(cfg.WarningName(config.WarnOctal), tok.Pos, len(tok.Lit), "octal literal %s is %s in decimal", tok.Lit, decimal(tok))
		}
		if cfg.IsWarningEnabled(config.WarnOverflow) && overflows(tok) {
			rep.Warn(cfg.WarningName(config.WarnOverflow), tok.Pos, len(tok.Lit), "integer constant %s does not fit in 64 bits", tok.Lit)
		}
	}
}

// Value parses an integer literal token the way its base prefix says.
func Value(tok token.Token) (uint64, error) {
	lit := tok.Lit
	base := 10
	switch tok.Kind {
	case token.Hex:
		lit, base = lit[2:], 16
	case token.Binary:
		lit, base = lit[2:], 2
	case token.Octal:
		base = 8
	case token.Integer:
	default:
		return 0, errors.New("not an integer literal: " + tok.Kind.String())
	}
	return strconv.ParseUint(lit, base, 64)
}

func overflows(tok token.Token) bool {
	_, err := Value(tok)
	return errors.Is(err, strconv.ErrRange)
}

func decimal(tok token.Token) string {
	v, err := Value(tok)
	if err != nil {
		return "out of range"
	}
	return strconv.FormatUint(v, 10)
}
