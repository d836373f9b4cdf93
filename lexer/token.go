package lexer

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType uint8

const (
	Plus  TokenType = iota // +
	Minus                  // -
	Star                   // *
	Slash                  // /

	GE // >=
	GT // >
	EQ // ==
	LE // <=
	LT // <

	SemiColon  // ;
	LeftParen  // (
	RightParen // )

	Assignment // =

	If
	Else
	Int

	Identifier
	IntLiteral
	StringLiteral

	numTokenTypes
)

var tokenTypeNames = [numTokenTypes]string{
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	GE:            "GE",
	GT:            "GT",
	EQ:            "EQ",
	LE:            "LE",
	LT:            "LT",
	SemiColon:     "SemiColon",
	LeftParen:     "LeftParen",
	RightParen:    "RightParen",
	Assignment:    "Assignment",
	If:            "If",
	Else:          "Else",
	Int:           "Int",
	Identifier:    "Identifier",
	IntLiteral:    "IntLiteral",
	StringLiteral: "StringLiteral",
}

// Valid reports whether tt is one of the declared token types.
func (tt TokenType) Valid() bool {
	return tt < numTokenTypes
}

func (tt TokenType) String() string {
	if !tt.Valid() {
		return fmt.Sprintf("TokenType(%d)", uint8(tt))
	}
	return tokenTypeNames[tt]
}

// LookupTokenType returns the type whose String form is name.
func LookupTokenType(name string) (TokenType, bool) {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i), true
		}
	}
	return 0, false
}

// TokenTypes lists every declared token type in declaration order.
func TokenTypes() []TokenType {
	out := make([]TokenType, 0, numTokenTypes)
	for tt := TokenType(0); tt < numTokenTypes; tt++ {
		out = append(out, tt)
	}
	return out
}

// Category groups token types for presentation.
type Category string

const (
	CategoryKeyword     Category = "keyword"
	CategoryIdentifier  Category = "identifier"
	CategoryLiteral     Category = "literal"
	CategoryOperator    Category = "operator"
	CategoryPunctuation Category = "punctuation"
)

func (tt TokenType) Category() Category {
	switch tt {
	case If, Else, Int:
		return CategoryKeyword
	case Identifier:
		return CategoryIdentifier
	case IntLiteral, StringLiteral:
		return CategoryLiteral
	case SemiColon, LeftParen, RightParen:
		return CategoryPunctuation
	default:
		return CategoryOperator
	}
}

// Token is a classified slice of source text. Tokens are only produced by
// the lexer and are never modified afterwards.
type Token struct {
	typ     TokenType
	literal string
	pos     Position
}

// Position identifies where a token starts in the source.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, counted in runes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (t Token) Type() TokenType { return t.typ }

// Literal returns the exact source text the token matched.
func (t Token) Literal() string { return t.literal }

func (t Token) Pos() Position { return t.pos }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.typ, t.literal)
}
