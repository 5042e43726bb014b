package scanner

import (
	"fmt"

	"github.com/xplshn/clex/pkg/token"
)

// alt pairs the byte that may follow an operator with the kind it makes.
type alt struct {
	ch   byte
	kind token.Kind
}

// choose compares the current byte against each alternative in order and
// consumes the first one that matches. Without a match it returns def and
// consumes nothing.
func (s *Scanner) choose(def token.Kind, alts ...alt) token.Kind {
	if s.atEOF() {
		return def
	}
	for _, a := range alts {
		if s.ch == a.ch {
			s.next()
			return a.kind
		}
	}
	return def
}

func (s *Scanner) scanOperator(pos token.Position) token.Kind {
	ch := s.ch
	s.next()
	switch ch {
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case '[':
		return token.LBracket
	case ']':
		return token.RBracket
	case ';':
		return token.Semi
	case ',':
		return token.Comma
	case ':':
		return token.Colon
	case '?':
		return token.Question
	case '~':
		return token.Tilde
	case '=':
		return s.choose(token.Assign, alt{'=', token.EqEq})
	case '!':
		return s.choose(token.Not, alt{'=', token.Neq})
	case '*':
		return s.choose(token.Star, alt{'=', token.StarEq})
	case '/':
		return s.choose(token.Slash, alt{'=', token.SlashEq})
	case '%':
		return s.choose(token.Rem, alt{'=', token.RemEq})
	case '^':
		return s.choose(token.Xor, alt{'=', token.XorEq})
	case '+':
		return s.choose(token.Plus, alt{'+', token.Inc}, alt{'=', token.PlusEq})
	case '&':
		return s.choose(token.And, alt{'&', token.AndAnd}, alt{'=', token.AndEq})
	case '|':
		return s.choose(token.Or, alt{'|', token.OrOr}, alt{'=', token.OrEq})
	case '-':
		return s.choose(token.Minus, alt{'-', token.Dec}, alt{'=', token.MinusEq}, alt{'>', token.Arrow})
	case '<':
		if tok := s.choose(token.Lt, alt{'<', token.Shl}, alt{'=', token.Lte}); tok != token.Shl {
			return tok
		}
		return s.choose(token.Shl, alt{'=', token.ShlEq})
	case '>':
		if tok := s.choose(token.Gt, alt{'>', token.Shr}, alt{'=', token.Gte}); tok != token.Shr {
			return tok
		}
		return s.choose(token.Shr, alt{'=', token.ShrEq})
	case '.':
		if s.ch == '.' && s.peek() == '.' {
			s.next()
			s.next()
			return token.Dots
		}
		return token.Dot
	}
	s.error(pos, illegalCharMessage(ch))
	return token.Illegal
}

func illegalCharMessage(ch byte) string {
	if ch >= ' ' && ch < 0x7f {
		return fmt.Sprintf("illegal character %q", ch)
	}
	return fmt.Sprintf("illegal character 0x%02x", ch)
}
