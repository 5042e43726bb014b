// Package scanner turns C source bytes into a stream of positioned tokens.
package scanner

import (
	"fmt"

	"github.com/xplshn/clex/pkg/token"
)

// ErrorHandler is called for every lexical error, before the offending
// Illegal token is returned from Scan.
type ErrorHandler func(pos token.Position, msg string)

type Scanner struct {
	src      []byte
	filename string
	err      ErrorHandler

	ch         byte // current byte, 0 if there is none
	offset     int  // offset of ch
	rdOffset   int  // offset of the byte after ch
	lineOffset int  // offset of the first byte of the current line
	line       int

	// ErrorCount is the number of errors reported so far.
	ErrorCount int
}

// New returns a Scanner positioned at the first byte of src. err may be nil.
func New(src []byte, filename string, err ErrorHandler) *Scanner {
	s := &Scanner{src: src, filename: filename, err: err, line: 1}
	s.next()
	return s
}

// next moves the cursor one byte forward. The line count is bumped when the
// cursor leaves a newline, so the newline belongs to the line it ends.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.line++
			s.lineOffset = s.offset
		}
		s.ch = s.src[s.offset]
		s.rdOffset++
		return
	}
	if s.offset < len(s.src) && s.ch == '\n' {
		s.line++
		s.lineOffset = len(s.src)
	}
	s.ch = 0
	s.offset = len(s.src)
}

func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) atEOF() bool { return s.offset >= len(s.src) }

func (s *Scanner) pos(offset int) token.Position {
	return token.Position{
		Filename: s.filename,
		Offset:   offset,
		Line:     s.line,
		Column:   offset - s.lineOffset + 1,
	}
}

func (s *Scanner) error(pos token.Position, msg string) {
	s.ErrorCount++
	if s.err != nil {
		s.err(pos, msg)
	}
}

func (s *Scanner) skipWhitespace() {
	for !s.atEOF() && (s.ch == ' ' || s.ch == '\t' || s.ch == '\r' || s.ch == '\n') {
		s.next()
	}
}

// Scan returns the next token, its starting position and its exact source
// text. At end of input it returns EOF with an empty lexeme, and keeps doing
// so on every further call.
func (s *Scanner) Scan() (tok token.Kind, pos token.Position, lit string) {
	s.skipWhitespace()
	pos = s.pos(s.offset)
	if s.atEOF() {
		return token.EOF, pos, ""
	}

	switch ch := s.ch; {
	case isLetter(ch):
		lit = s.scanIdentifier()
		tok = token.Lookup(lit)
	case isDecimal(ch):
		tok, lit = s.scanNumber(pos)
	default:
		tok = s.scanOperator(pos)
		lit = string(s.src[pos.Offset:s.offset])
	}

	if s.offset <= pos.Offset {
		panic(fmt.Sprintf("scanner: no progress at %s", pos))
	}
	return tok, pos, lit
}

// Tokenize scans all of src and returns its tokens, ending with EOF.
func Tokenize(src []byte, filename string, err ErrorHandler) []token.Token {
	s := New(src, filename, err)
	var toks []token.Token
	for {
		tok, pos, lit := s.Scan()
		toks = append(toks, token.Token{Kind: tok, Pos: pos, Lit: lit})
		if tok == token.EOF {
			return toks
		}
	}
}

func (s *Scanner) scanIdentifier() string {
	start := s.offset
	for isLetter(s.ch) || isDecimal(s.ch) {
		s.next()
	}
	return string(s.src[start:s.offset])
}

func isLetter(ch byte) bool {
	return 'a' <= lower(ch) && lower(ch) <= 'z' || ch == '_' || ch == '$'
}

func lower(ch byte) byte     { return ('a' - 'A') | ch }
func isDecimal(ch byte) bool { return '0' <= ch && ch <= '9' }
func isOctal(ch byte) bool   { return '0' <= ch && ch <= '7' }
func isBinary(ch byte) bool  { return ch == '0' || ch == '1' }
func isHex(ch byte) bool     { return isDecimal(ch) || 'a' <= lower(ch) && lower(ch) <= 'f' }
