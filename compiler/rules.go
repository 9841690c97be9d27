package compiler

import "github.com/deepnoodle-ai/glox/internal/token"

// Precedence is the binding strength of an operator, from lowest to highest.
type Precedence uint8

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// Next returns the next higher precedence. PrecPrimary is its own successor.
func (p Precedence) Next() Precedence {
	if p >= PrecPrimary {
		return PrecPrimary
	}
	return p + 1
}

type parseFn func(*Compiler)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is indexed by token type. It is filled once in init and never
// modified afterwards. Token types without an entry get the zero rule: no
// handlers and PrecNone.
var rules [token.Count]parseRule

func init() {
	rules = [token.Count]parseRule{
		token.LPAREN:        {(*Compiler).grouping, nil, PrecNone},
		token.MINUS:         {(*Compiler).unary, (*Compiler).binary, PrecTerm},
		token.PLUS:          {nil, (*Compiler).binary, PrecTerm},
		token.SLASH:         {nil, (*Compiler).binary, PrecFactor},
		token.STAR:          {nil, (*Compiler).binary, PrecFactor},
		token.BANG:          {(*Compiler).unary, nil, PrecNone},
		token.BANG_EQUAL:    {nil, (*Compiler).binary, PrecEquality},
		token.EQUAL_EQUAL:   {nil, (*Compiler).binary, PrecEquality},
		token.GREATER:       {nil, (*Compiler).binary, PrecComparison},
		token.GREATER_EQUAL: {nil, (*Compiler).binary, PrecComparison},
		token.LESS:          {nil, (*Compiler).binary, PrecComparison},
		token.LESS_EQUAL:    {nil, (*Compiler).binary, PrecComparison},
		token.NUMBER:        {(*Compiler).number, nil, PrecNone},
		token.FALSE:         {(*Compiler).literal, nil, PrecNone},
		token.NIL:           {(*Compiler).literal, nil, PrecNone},
		token.TRUE:          {(*Compiler).literal, nil, PrecNone},
	}
}

func getRule(typ token.Type) *parseRule {
	return &rules[typ]
}
