package lox

import "fmt"

// TokenType classifies a lexeme produced by the Scanner.
type TokenType int

const (
	// Single-character punctuation.
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One-or-two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	// EOF marks the end of the token stream.
	EOF
)

var tokenTypeNames = map[TokenType]string{
	LeftParen: "LeftParen", RightParen: "RightParen",
	LeftBrace: "LeftBrace", RightBrace: "RightBrace",
	Comma: "Comma", Dot: "Dot", Minus: "Minus", Plus: "Plus",
	Semicolon: "Semicolon", Slash: "Slash", Star: "Star",
	Bang: "Bang", BangEqual: "BangEqual",
	Equal: "Equal", EqualEqual: "EqualEqual",
	Greater: "Greater", GreaterEqual: "GreaterEqual",
	Less: "Less", LessEqual: "LessEqual",
	Identifier: "Identifier", String: "String", Number: "Number",
	And: "and", Class: "class", Else: "else", False: "false",
	Fun: "fun", For: "for", If: "if", Nil: "nil", Or: "or",
	Print: "print", Return: "return", Super: "super", This: "this",
	True: "true", Var: "var", While: "while",
	EOF: "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps reserved-word lexemes to their keyword TokenType. Any
// identifier not found here is a plain Identifier.
var keywords = map[string]TokenType{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is a single lexical element: its classification, the exact source
// text it was scanned from, an optional literal payload (for String and
// Number tokens), and the source line it starts on. Tokens are immutable
// after construction.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // string for String tokens, float64 for Number tokens, nil otherwise
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %v", t.Type, t.Lexeme, t.Literal)
}
