// Package token defines language keywords and tokens used when lexing source code.
package token

import "fmt"

// Type describes the lexical category of a token. The values are dense so
// they can index fixed-size lookup tables.
type Type uint8

// Token represents one token lexed from the input source code.
type Token struct {
	Type   Type
	Lexeme string // for ERROR tokens, the diagnostic message
	Line   int    // 1-based line number
}

// String returns a readable representation of the token, used in tests and
// debug logging.
func (t Token) String() string {
	return fmt.Sprintf("%s %q (line %d)", t.Type, t.Lexeme, t.Line)
}

// Token types
const (
	// Single-character tokens
	LPAREN Type = iota
	RPAREN
	LBRACE
	RBRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// One or two character tokens
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Literals
	IDENT
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE

	ERROR
	EOF

	// Count is the number of token types. It must remain last.
	Count
)

var names = [Count]string{
	LPAREN:        "(",
	RPAREN:        ")",
	LBRACE:        "{",
	RBRACE:        "}",
	COMMA:         ",",
	DOT:           ".",
	MINUS:         "-",
	PLUS:          "+",
	SEMICOLON:     ";",
	SLASH:         "/",
	STAR:          "*",
	BANG:          "!",
	BANG_EQUAL:    "!=",
	EQUAL:         "=",
	EQUAL_EQUAL:   "==",
	GREATER:       ">",
	GREATER_EQUAL: ">=",
	LESS:          "<",
	LESS_EQUAL:    "<=",
	IDENT:         "IDENT",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FOR:           "FOR",
	FUN:           "FUN",
	IF:            "IF",
	NIL:           "NIL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
	ERROR:         "ERROR",
	EOF:           "EOF",
}

// String returns the name of the token type.
func (t Type) String() string {
	if t < Count {
		return names[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Reserved keywords
var keywords = map[string]Type{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdentifier returns the keyword type for identifier, or IDENT.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
