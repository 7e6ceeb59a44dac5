// Package token defines the closed tag set of lexical tokens produced by
// package lexer and consumed by package parser.
package token

import "github.com/basecode-lang/alphac/source"

// Kind is the closed tag set of token kinds. Tokens are immutable once
// produced by the lexer.
type Kind int

// Token kinds. Operators and punctuation come first (they double as map
// keys for the parser's prefix/infix dispatch tables), then keywords, then
// literals and structural tokens.
const (
	Invalid Kind = iota
	EOF

	// operators / punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Assign       // =
	ColonEquals  // :=
	ColonColonEq // ::=
	Equal        // ==
	NotEqual     // !=
	Less
	LessEqual
	Greater
	GreaterEqual
	LogicalAnd
	LogicalOr
	LogicalNot
	Ampersand // bitwise and / address-of
	Pipe      // bitwise or
	Caret     // bitwise xor
	Tilde     // bitwise not
	Shl
	Shr
	Caret2 // exponent **
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Dot
	DotDotDot // spread
	Hash      // attribute / directive prefix
	Arrow     // ->

	// keywords
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwReturn
	KwImport
	KwFrom
	KwProc
	KwStruct
	KwUnion
	KwEnum
	KwNS
	KwDefer
	KwWith
	KwBreak
	KwContinue
	KwCast
	KwTransmute
	KwSizeOf
	KwAlignOf
	KwAddressOf
	KwTypeOf
	KwAlloc
	KwFree
	KwNull
	KwTrue
	KwFalse
	KwModule

	// literals / identifiers / structural
	Ident
	Label
	NumberLiteral
	StringLiteral
	CharLiteral
	LineComment
	BlockComment
)

// NumberKind distinguishes integer from floating-point numeric literals.
type NumberKind int

// Numeric literal sub-kinds.
const (
	NotNumeric NumberKind = iota
	IntegerLiteral
	FloatLiteral
)

// Radix is the base a numeric literal was written in.
type Radix int

// Supported numeric literal radixes, selected by the lexer from the prefix
// character ($ hex, @ octal, % binary; absence of a prefix means decimal).
const (
	Decimal Radix = 10
	Binary  Radix = 2
	Octal   Radix = 8
	Hex     Radix = 16
)

// Token is an immutable lexical token: its kind, literal text, numeric
// sub-kind/radix when applicable, and the source location it was read from.
type Token struct {
	Kind     Kind
	Value    string
	Radix    Radix
	Number   NumberKind
	Location source.Location
}

// String implements fmt.Stringer for debug output and diagnostics.
func (t Token) String() string {
	if t.Value != "" {
		return t.Value
	}
	return kindNames[t.Kind]
}

// IsEOF reports whether t is the distinguished end-of-file token.
func (t Token) IsEOF() bool { return t.Kind == EOF }

var kindNames = map[Kind]string{
	Invalid: "<invalid>", EOF: "<eof>",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", ColonEquals: ":=", ColonColonEq: "::=",
	Equal: "==", NotEqual: "!=", Less: "<", LessEqual: "<=",
	Greater: ">", GreaterEqual: ">=", LogicalAnd: "&&", LogicalOr: "||",
	LogicalNot: "!", Ampersand: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Shl: "<<", Shr: ">>", Caret2: "**",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Colon: ":", Semicolon: ";",
	Dot: ".", DotDotDot: "...", Hash: "#", Arrow: "->",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwIn: "in",
	KwReturn: "return", KwImport: "import", KwFrom: "from", KwProc: "proc",
	KwStruct: "struct", KwUnion: "union", KwEnum: "enum", KwNS: "ns",
	KwDefer: "defer", KwWith: "with", KwBreak: "break", KwContinue: "continue",
	KwCast: "cast", KwTransmute: "transmute", KwSizeOf: "size_of",
	KwAlignOf: "align_of", KwAddressOf: "address_of", KwTypeOf: "type_of",
	KwAlloc: "alloc", KwFree: "free", KwNull: "null", KwTrue: "true",
	KwFalse: "false", KwModule: "module",
	Ident: "<ident>", Label: "<label>", NumberLiteral: "<number>",
	StringLiteral: "<string>", CharLiteral: "<char>",
	LineComment: "<line-comment>", BlockComment: "<block-comment>",
}

// Keywords maps keyword spelling to Kind. Built once so the lexer's
// identifier recognizer can do a single map lookup after matching an
// identifier run.
var Keywords = map[string]Kind{
	"if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor, "in": KwIn,
	"return": KwReturn, "import": KwImport, "from": KwFrom, "proc": KwProc,
	"struct": KwStruct, "union": KwUnion, "enum": KwEnum, "ns": KwNS,
	"defer": KwDefer, "with": KwWith, "break": KwBreak, "continue": KwContinue,
	"cast": KwCast, "transmute": KwTransmute, "size_of": KwSizeOf,
	"align_of": KwAlignOf, "address_of": KwAddressOf, "type_of": KwTypeOf,
	"alloc": KwAlloc, "free": KwFree, "null": KwNull, "true": KwTrue,
	"false": KwFalse, "module": KwModule,
}
