// Package compiler turns source text into a bytecode Chunk in a single pass.
// It drives the lexer one token at a time and emits instructions directly
// from a Pratt-style operator precedence parser. No syntax tree is built.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/deepnoodle-ai/glox/bytecode"
	"github.com/deepnoodle-ai/glox/errz"
	"github.com/deepnoodle-ai/glox/internal/lexer"
	"github.com/deepnoodle-ai/glox/internal/token"
	"github.com/deepnoodle-ai/glox/object"
	"github.com/deepnoodle-ai/glox/op"
)

// Compiler holds the state for compiling one source unit. A Compiler is
// single use: create a new one for every compilation.
type Compiler struct {
	lexer    *lexer.Lexer
	previous token.Token
	current  token.Token
	chunk    *bytecode.Chunk

	// hadError latches on the first reported diagnostic. Later diagnostics
	// are suppressed but parsing continues to the end of the input.
	hadError bool
	firstErr *errz.CompileError

	errWriter io.Writer
	compiled  bool
}

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithErrorWriter sets where diagnostics are written. The default is
// os.Stderr. Pass io.Discard to silence them.
func WithErrorWriter(w io.Writer) Option {
	return func(c *Compiler) {
		c.errWriter = w
	}
}

// New returns a Compiler for the given source.
func New(source string, options ...Option) *Compiler {
	c := &Compiler{
		lexer:     lexer.New(source),
		chunk:     bytecode.New(),
		errWriter: os.Stderr,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Compile is a convenience wrapper around New(source).Compile().
func Compile(source string, options ...Option) (*bytecode.Chunk, error) {
	return New(source, options...).Compile()
}

// Compile parses a single expression followed by the end of input and
// returns the resulting chunk, terminated by a RETURN_VALUE instruction.
//
// The chunk is returned even when compilation fails. In that case the error
// is the first diagnostic (a *errz.CompileError) and HadError reports true;
// callers must not execute the chunk.
func (c *Compiler) Compile() (*bytecode.Chunk, error) {
	if !c.compiled {
		c.compiled = true
		c.advance()
		c.expression()
		c.consume(token.EOF, "Expect end of expression.")
		c.endCompile()
	}
	if c.hadError {
		return c.chunk, c.firstErr
	}
	return c.chunk, nil
}

// HadError reports whether any diagnostic was reported.
func (c *Compiler) HadError() bool {
	return c.hadError
}

func (c *Compiler) endCompile() {
	c.emitOp(op.ReturnValue)
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lexer.Next()
		if c.current.Type != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) consume(expected token.Type, message string) {
	if c.current.Type == expected {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(precedence Precedence) {
	c.advance()
	prefix := getRule(c.previous.Type).prefix
	if prefix == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}
	prefix(c)

	for precedence <= getRule(c.current.Type).precedence {
		c.advance()
		infix := getRule(c.previous.Type).infix
		if infix == nil {
			panic(fmt.Sprintf("compiler: %s has a precedence but no infix rule", c.previous.Type))
		}
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary() {
	operatorType := c.previous.Type

	// Compile the operand
	c.parsePrecedence(PrecUnary)

	switch operatorType {
	case token.MINUS:
		c.emitOp(op.UnaryNegative)
	case token.BANG:
		c.emitOp(op.UnaryNot)
	default:
		panic(fmt.Sprintf("compiler: unexpected unary operator %s", operatorType))
	}
}

func (c *Compiler) binary() {
	operatorType := c.previous.Type
	rule := getRule(operatorType)

	// The right operand binds one level tighter, which makes operators of
	// equal precedence group to the left.
	c.parsePrecedence(rule.precedence.Next())

	switch operatorType {
	case token.PLUS:
		c.emitOp(op.BinaryAdd)
	case token.MINUS:
		c.emitOp(op.BinarySubtract)
	case token.STAR:
		c.emitOp(op.BinaryMultiply)
	case token.SLASH:
		c.emitOp(op.BinaryDivide)
	case token.EQUAL_EQUAL:
		c.emitOp(op.CompareEqual)
	case token.BANG_EQUAL:
		c.emitOps(op.CompareEqual, op.UnaryNot)
	case token.GREATER:
		c.emitOp(op.CompareGreater)
	case token.GREATER_EQUAL:
		c.emitOps(op.CompareLess, op.UnaryNot)
	case token.LESS:
		c.emitOp(op.CompareLess)
	case token.LESS_EQUAL:
		c.emitOps(op.CompareGreater, op.UnaryNot)
	default:
		panic(fmt.Sprintf("compiler: unexpected binary operator %s", operatorType))
	}
}

func (c *Compiler) literal() {
	switch c.previous.Type {
	case token.FALSE:
		c.emitOp(op.False)
	case token.NIL:
		c.emitOp(op.Nil)
	case token.TRUE:
		c.emitOp(op.True)
	default:
		panic(fmt.Sprintf("compiler: unexpected literal %s", c.previous.Type))
	}
}

func (c *Compiler) number() {
	// Digit runs too long for a float64 overflow to +Inf, which is kept.
	value, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(object.NewNumber(value))
}

func (c *Compiler) emitOp(code op.Code) {
	c.chunk.WriteOp(code, c.previous.Line)
}

func (c *Compiler) emitOps(codes ...op.Code) {
	for _, code := range codes {
		c.emitOp(code)
	}
}

func (c *Compiler) emitConstant(value object.Value) {
	index := c.chunk.AddConstant(value)
	c.chunk.Write(bytecode.Instruction{Op: op.LoadConst, Operand: index}, c.previous.Line)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.hadError {
		return
	}
	var where string
	switch tok.Type {
	case token.EOF:
		where = " at end"
	case token.ERROR:
		// The message already describes the offending text
	default:
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	c.hadError = true
	c.firstErr = &errz.CompileError{
		Line:    tok.Line,
		Where:   where,
		Message: message,
	}
	fmt.Fprintln(c.errWriter, c.firstErr.Error())
}
