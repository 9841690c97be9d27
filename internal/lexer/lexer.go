// Package lexer converts source text into a stream of tokens, one token per
// call to Next.
package lexer

import (
	"unicode/utf8"

	"github.com/deepnoodle-ai/glox/internal/token"
)

// Lexer scans tokens on demand from an input string.
type Lexer struct {
	input   string
	start   int // byte offset where the current token begins
	current int // byte offset of the next unread character
	line    int // 1-based line of the next unread character
}

// New returns a Lexer positioned at the beginning of input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Line returns the line number of the next unread character.
func (l *Lexer) Line() int {
	return l.line
}

// Next returns the next token from the input. Once the input is exhausted,
// every call returns an EOF token. Lexical problems are reported as ERROR
// tokens whose Lexeme holds the message; the position always advances.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()
	l.start = l.current
	if l.atEnd() {
		return l.makeToken(token.EOF)
	}

	ch := l.advance()
	switch {
	case isAlpha(ch):
		return l.identifier()
	case isDigit(ch):
		return l.number()
	}

	switch ch {
	case '(':
		return l.makeToken(token.LPAREN)
	case ')':
		return l.makeToken(token.RPAREN)
	case '{':
		return l.makeToken(token.LBRACE)
	case '}':
		return l.makeToken(token.RBRACE)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case ',':
		return l.makeToken(token.COMMA)
	case '.':
		return l.makeToken(token.DOT)
	case '-':
		return l.makeToken(token.MINUS)
	case '+':
		return l.makeToken(token.PLUS)
	case '/':
		return l.makeToken(token.SLASH)
	case '*':
		return l.makeToken(token.STAR)
	case '!':
		return l.makeTwoCharToken('=', token.BANG_EQUAL, token.BANG)
	case '=':
		return l.makeTwoCharToken('=', token.EQUAL_EQUAL, token.EQUAL)
	case '<':
		return l.makeTwoCharToken('=', token.LESS_EQUAL, token.LESS)
	case '>':
		return l.makeTwoCharToken('=', token.GREATER_EQUAL, token.GREATER)
	case '"':
		return l.string()
	}
	return l.errorToken("Unexpected character.")
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.input)
}

// advance consumes one character. Non-ASCII input is consumed a whole rune
// at a time so a single stray character produces a single error token.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.current:])
	l.current += size
	return r
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.input) {
		return 0
	}
	return l.input[l.current+1]
}

func (l *Lexer) match(expected byte) bool {
	if l.peek() != expected || l.atEnd() {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.current++
		case '\n':
			l.line++
			l.current++
		case '/':
			if l.peekNext() != '/' {
				return
			}
			for !l.atEnd() && l.peek() != '\n' {
				l.current++
			}
		default:
			return
		}
	}
}

func (l *Lexer) string() token.Token {
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.current++
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.current++ // closing quote
	return l.makeToken(token.STRING)
}

func (l *Lexer) number() token.Token {
	for isDigit(rune(l.peek())) {
		l.current++
	}
	if l.peek() == '.' && isDigit(rune(l.peekNext())) {
		l.current++
		for isDigit(rune(l.peek())) {
			l.current++
		}
	}
	return l.makeToken(token.NUMBER)
}

func (l *Lexer) identifier() token.Token {
	for isAlpha(rune(l.peek())) || isDigit(rune(l.peek())) {
		l.current++
	}
	return l.makeToken(token.LookupIdentifier(l.input[l.start:l.current]))
}

func (l *Lexer) makeTwoCharToken(next byte, two, one token.Type) token.Token {
	if l.match(next) {
		return l.makeToken(two)
	}
	return l.makeToken(one)
}

func (l *Lexer) makeToken(typ token.Type) token.Token {
	return token.Token{
		Type:   typ,
		Lexeme: l.input[l.start:l.current],
		Line:   l.line,
	}
}

func (l *Lexer) errorToken(message string) token.Token {
	return token.Token{
		Type:   token.ERROR,
		Lexeme: message,
		Line:   l.line,
	}
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isAlpha(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
