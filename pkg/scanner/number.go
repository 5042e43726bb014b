package scanner

import "github.com/xplshn/clex/pkg/token"

// scanNumber scans a numeric literal starting at the current digit.
//
//	0[xX]hex+                       Hex
//	0[bB][01]+                      Binary
//	0[0-7]+                         Octal, as is a lone 0
//	digits                          Integer
//	digits(.digits)?([eE][+-]?digits)?[fF]?   DoubleNumber, FloatNumber with the suffix
//
// A base prefix with no digits is reported and returned as Illegal. An
// exponent marker not followed by digits is left for the next token.
func (s *Scanner) scanNumber(pos token.Position) (token.Kind, string) {
	start := s.offset
	if s.ch == '0' {
		switch next := s.peek(); {
		case lower(next) == 'x':
			return s.scanPrefixed(pos, "hexadecimal", isHex, token.Hex)
		case lower(next) == 'b':
			return s.scanPrefixed(pos, "binary", isBinary, token.Binary)
		case isOctal(next):
			s.next()
			s.digits(isOctal)
			return token.Octal, string(s.src[start:s.offset])
		}
	}

	s.digits(isDecimal)
	kind := token.Integer
	if s.ch == '.' && isDecimal(s.peek()) {
		s.next()
		s.digits(isDecimal)
		kind = token.DoubleNumber
	}
	if lower(s.ch) == 'e' && s.exponentFollows() {
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		s.digits(isDecimal)
		kind = token.DoubleNumber
	}
	if kind == token.DoubleNumber && lower(s.ch) == 'f' {
		s.next()
		kind = token.FloatNumber
	}

	lit := string(s.src[start:s.offset])
	if lit == "0" {
		kind = token.Octal
	}
	return kind, lit
}

// exponentFollows reports whether the e or E under the cursor starts an
// exponent, that is whether digits follow it after an optional sign.
func (s *Scanner) exponentFollows() bool {
	i := s.rdOffset
	if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
		i++
	}
	return i < len(s.src) && isDecimal(s.src[i])
}

// scanPrefixed scans a 0x or 0b literal. A prefix with no digits after it is
// an Illegal token of exactly two bytes.
func (s *Scanner) scanPrefixed(pos token.Position, base string, valid func(byte) bool, kind token.Kind) (token.Kind, string) {
	start := s.offset
	s.next()
	s.next()
	n := s.digits(valid)
	lit := string(s.src[start:s.offset])
	if n == 0 {
		s.error(pos, base+" literal has no digits")
		return token.Illegal, lit
	}
	return kind, lit
}

func (s *Scanner) digits(valid func(byte) bool) int {
	n := 0
	for !s.atEOF() && valid(s.ch) {
		s.next()
		n++
	}
	return n
}
