// Package parser implements a backtracking recursive-descent parser for
// JamaScript. Every rule is a pure function of an immutable token slice and a
// position; "consuming" a token means returning a later position in the
// ParseResult. Optional and repeated constructs are parsed by trial: a failed
// attempt leaves the position where it was and ends the repetition.
package parser

import (
	"errors"
	"fmt"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

// ParseResult pairs a parsed value with the index of the first unconsumed token.
type ParseResult[T any] struct {
	Value T
	Next  int
}

// ParseError reports the token a rule required and the one it found.
type ParseError struct {
	Expected string
	Received string
	Position int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: expected %s, received %s at token %d", e.Expected, e.Received, e.Position)
}

// EndOfInput is the Received text of errors raised past the last token.
const EndOfInput = "end of input"

// Parse parses a whole program and requires every token to be consumed.
func Parse(tokens []token.Token) (*ast.Program, error) {
	res, err := stream(tokens).parseProgram(0)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// ParseExpression parses one expression starting at pos.
func ParseExpression(tokens []token.Token, pos int) (ParseResult[ast.Expression], error) {
	return stream(tokens).parseExpression(pos)
}

// ParseWholeExpression parses tokens as exactly one expression.
func ParseWholeExpression(tokens []token.Token) (ast.Expression, error) {
	ts := stream(tokens)
	res, err := ts.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if res.Next < len(ts) {
		return nil, furthest(ts.errorAt(res.Next, EndOfInput), ts.danglingOperand(res.Next))
	}
	return res.Value, nil
}

// ParseStatement parses one statement starting at pos.
func ParseStatement(tokens []token.Token, pos int) (ParseResult[ast.Statement], error) {
	return stream(tokens).parseStatement(pos)
}

// ParseMethod parses one method definition starting at pos.
func ParseMethod(tokens []token.Token, pos int) (ParseResult[*ast.MethodDefinition], error) {
	return stream(tokens).parseMethod(pos)
}

// IsIncomplete reports whether err was raised because the input ended before
// the construct did, so that appending more tokens could make it parse.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Received == EndOfInput
}
