package token

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	Illegal Kind = iota
	EOF

	literalBeg
	Ident
	Octal
	Hex
	Binary
	Integer
	FloatNumber
	DoubleNumber
	literalEnd

	operatorBeg
	Assign   // =
	PlusEq   // +=
	MinusEq  // -=
	StarEq   // *=
	SlashEq  // /=
	RemEq    // %=
	ShlEq    // <<=
	ShrEq    // >>=
	XorEq    // ^=
	AndEq    // &=
	OrEq     // |=
	And      // &
	Or       // |
	Xor      // ^
	Shl      // <<
	Shr      // >>
	Tilde    // ~
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Rem      // %
	Inc      // ++
	Dec      // --
	Not      // !
	AndAnd   // &&
	OrOr     // ||
	EqEq     // ==
	Neq      // !=
	Gt       // >
	Lt       // <
	Gte      // >=
	Lte      // <=
	Question // ?
	Arrow    // ->
	Dot      // .
	Dots     // ...
	LParen   // (
	LBrace   // {
	LBracket // [
	Comma    // ,
	Colon    // :
	RParen   // )
	RBrace   // }
	RBracket // ]
	Semi     // ;
	operatorEnd

	keywordBeg
	Auto
	Break
	Case
	Char
	Const
	Continue
	Default
	Do
	Double
	Else
	Enum
	Extern
	Float
	For
	Goto
	If
	Inline
	Int
	Long
	Register
	Restrict
	Return
	Short
	Signed
	Sizeof
	Static
	Struct
	Switch
	Typedef
	Union
	Unsigned
	Void
	Volatile
	While
	keywordEnd
)

var kindText = [keywordEnd]string{
	Illegal: "ILLEGAL",
	EOF:     "EOF",

	Ident:        "IDENT",
	Octal:        "OCTAL",
	Hex:          "HEX",
	Binary:       "BINARY",
	Integer:      "INTEGER",
	FloatNumber:  "FLOAT",
	DoubleNumber: "DOUBLE",

	Assign:   "=",
	PlusEq:   "+=",
	MinusEq:  "-=",
	StarEq:   "*=",
	SlashEq:  "/=",
	RemEq:    "%=",
	ShlEq:    "<<=",
	ShrEq:    ">>=",
	XorEq:    "^=",
	AndEq:    "&=",
	OrEq:     "|=",
	And:      "&",
	Or:       "|",
	Xor:      "^",
	Shl:      "<<",
	Shr:      ">>",
	Tilde:    "~",
	Plus:     "+",
	Minus:    "-",
	Star:     "*",
	Slash:    "/",
	Rem:      "%",
	Inc:      "++",
	Dec:      "--",
	Not:      "!",
	AndAnd:   "&&",
	OrOr:     "||",
	EqEq:     "==",
	Neq:      "!=",
	Gt:       ">",
	Lt:       "<",
	Gte:      ">=",
	Lte:      "<=",
	Question: "?",
	Arrow:    "->",
	Dot:      ".",
	Dots:     "...",
	LParen:   "(",
	LBrace:   "{",
	LBracket: "[",
	Comma:    ",",
	Colon:    ":",
	RParen:   ")",
	RBrace:   "}",
	RBracket: "]",
	Semi:     ";",
}

var KeywordMap = map[string]Kind{
	"auto":     Auto,
	"break":    Break,
	"case":     Case,
	"char":     Char,
	"const":    Const,
	"continue": Continue,
	"default":  Default,
	"do":       Do,
	"double":   Double,
	"else":     Else,
	"enum":     Enum,
	"extern":   Extern,
	"float":    Float,
	"for":      For,
	"goto":     Goto,
	"if":       If,
	"inline":   Inline,
	"int":      Int,
	"long":     Long,
	"register": Register,
	"restrict": Restrict,
	"return":   Return,
	"short":    Short,
	"signed":   Signed,
	"sizeof":   Sizeof,
	"static":   Static,
	"struct":   Struct,
	"switch":   Switch,
	"typedef":  Typedef,
	"union":    Union,
	"unsigned": Unsigned,
	"void":     Void,
	"volatile": Volatile,
	"while":    While,
}

// Reverse mapping from display text to Kind, covering every kind.
var KindStrings = make(map[string]Kind)

func init() {
	for kw, k := range KeywordMap {
		kindText[k] = kw
	}
	for i, s := range kindText {
		if s != "" {
			KindStrings[s] = Kind(i)
		}
	}
}

// String returns the canonical display text of k: the symbol for operators,
// the spelling for keywords and an upper-case label otherwise.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindText) && kindText[k] != "" {
		return kindText[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) MarshalText() ([]byte, error) {
	s := k.String()
	if _, ok := KindStrings[s]; !ok {
		return nil, fmt.Errorf("token: cannot marshal %s", s)
	}
	return []byte(s), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := KindStrings[string(text)]
	if !ok {
		return fmt.Errorf("token: unknown kind %q", text)
	}
	*k = v
	return nil
}

// Lookup maps an identifier to its keyword kind, or Ident.
func Lookup(ident string) Kind {
	if k, ok := KeywordMap[ident]; ok {
		return k
	}
	return Ident
}

func (k Kind) IsLiteral() bool  { return literalBeg < k && k < literalEnd }
func (k Kind) IsOperator() bool { return operatorBeg < k && k < operatorEnd }
func (k Kind) IsKeyword() bool  { return keywordBeg < k && k < keywordEnd }
func (k Kind) IsNumber() bool   { return k.IsLiteral() && k != Ident }

// IsInteger reports whether k is one of the integer literal classes.
func (k Kind) IsInteger() bool {
	switch k {
	case Octal, Hex, Binary, Integer:
		return true
	}
	return false
}

type Token struct {
	Kind Kind     `json:"kind"`
	Pos  Position `json:"pos"`
	Lit  string   `json:"lit"`
}
