package parser

import (
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

type expressionRule func(int) (ParseResult[ast.Expression], error)

// Operator layers, weakest binding first. Each layer parses the next one
// and folds same-layer operators to the left.
var (
	equalityOperators = map[token.Kind]ast.Operator{
		token.Equal: ast.OpEqual,
	}
	relationalOperators = map[token.Kind]ast.Operator{
		token.Less:         ast.OpLess,
		token.Greater:      ast.OpGreater,
		token.LessEqual:    ast.OpLessEqual,
		token.GreaterEqual: ast.OpGreaterEqual,
	}
	additiveOperators = map[token.Kind]ast.Operator{
		token.Plus:  ast.OpPlus,
		token.Minus: ast.OpMinus,
	}
	multiplicativeOperators = map[token.Kind]ast.Operator{
		token.Star:  ast.OpMultiply,
		token.Slash: ast.OpDivide,
	}
)

func isBinaryOperator(kind token.Kind) bool {
	for _, layer := range []map[token.Kind]ast.Operator{
		equalityOperators, relationalOperators, additiveOperators, multiplicativeOperators,
	} {
		if _, ok := layer[kind]; ok {
			return true
		}
	}
	return false
}

func (ts stream) parseExpression(pos int) (ParseResult[ast.Expression], error) {
	return ts.parseEquality(pos)
}

func (ts stream) parseEquality(pos int) (ParseResult[ast.Expression], error) {
	return ts.parseLayer(pos, ts.parseRelational, equalityOperators)
}

func (ts stream) parseRelational(pos int) (ParseResult[ast.Expression], error) {
	return ts.parseLayer(pos, ts.parseAdditive, relationalOperators)
}

func (ts stream) parseAdditive(pos int) (ParseResult[ast.Expression], error) {
	return ts.parseLayer(pos, ts.parseMultiplicative, additiveOperators)
}

func (ts stream) parseMultiplicative(pos int) (ParseResult[ast.Expression], error) {
	return ts.parseLayer(pos, ts.parsePostfix, multiplicativeOperators)
}

// parseLayer parses `operand (op operand)*` for the operators of one layer.
// An operator whose right operand fails to parse is left unconsumed; rules
// that need a token after the expression recover that failure through
// expectAfter.
func (ts stream) parseLayer(pos int, operand expressionRule, operators map[token.Kind]ast.Operator) (ParseResult[ast.Expression], error) {
	left, err := operand(pos)
	if err != nil {
		return left, err
	}
	for {
		tok, ok := ts.at(left.Next)
		if !ok {
			return left, nil
		}
		op, ok := operators[tok.Kind]
		if !ok {
			return left, nil
		}
		right, err := operand(left.Next + 1)
		if err != nil {
			return left, nil
		}
		left = ParseResult[ast.Expression]{
			Value: ast.NewBinaryExpression(op, left.Value, right.Value),
			Next:  right.Next,
		}
	}
}

// parsePostfix parses a primary expression followed by `.name(args)` chains.
func (ts stream) parsePostfix(pos int) (ParseResult[ast.Expression], error) {
	res, err := ts.parsePrimary(pos)
	if err != nil {
		return res, err
	}
	for ts.is(res.Next, token.Dot) {
		call, err := ts.parseCall(res.Next+1, res.Value)
		if err != nil {
			return res, nil
		}
		res = call
	}
	return res, nil
}

func (ts stream) parsePrimary(pos int) (ParseResult[ast.Expression], error) {
	tok, ok := ts.at(pos)
	if !ok {
		return ParseResult[ast.Expression]{Next: pos}, ts.errorAt(pos, "expression")
	}
	switch tok.Kind {
	case token.IntegerLiteral:
		return ParseResult[ast.Expression]{Value: ast.NewIntegerLiteral(tok.Int), Next: pos + 1}, nil
	case token.StringLiteral:
		return ParseResult[ast.Expression]{Value: ast.NewStringLiteral(tok.Text), Next: pos + 1}, nil
	case token.True:
		return ParseResult[ast.Expression]{Value: ast.NewBooleanLiteral(true), Next: pos + 1}, nil
	case token.False:
		return ParseResult[ast.Expression]{Value: ast.NewBooleanLiteral(false), Next: pos + 1}, nil
	case token.Identifier:
		return ParseResult[ast.Expression]{Value: ast.NewIdentifier(tok.Text), Next: pos + 1}, nil
	case token.MethodName:
		return ts.parseCall(pos, nil)
	case token.New:
		return ts.parseNew(pos)
	case token.LeftParen:
		inner, err := ts.parseExpression(pos + 1)
		if err != nil {
			return inner, err
		}
		closing, err := ts.expectAfter(inner.Next, token.RightParen)
		if err != nil {
			return ParseResult[ast.Expression]{Next: pos}, err
		}
		return ParseResult[ast.Expression]{Value: inner.Value, Next: closing.Next}, nil
	default:
		return ParseResult[ast.Expression]{Next: pos}, ts.errorAt(pos, "expression")
	}
}

// parseCall parses `name(args)` at pos; receiver is nil for plain calls.
func (ts stream) parseCall(pos int, receiver ast.Expression) (ParseResult[ast.Expression], error) {
	name, err := ts.expect(pos, token.MethodName)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	args, err := ts.parseArguments(name.Next)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	return ParseResult[ast.Expression]{
		Value: ast.NewMethodCall(receiver, name.Value.Text, args.Value),
		Next:  args.Next,
	}, nil
}

func (ts stream) parseNew(pos int) (ParseResult[ast.Expression], error) {
	kw, err := ts.expect(pos, token.New)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	class, err := ts.expect(kw.Next, token.ClassName)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	args, err := ts.parseArguments(class.Next)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	return ParseResult[ast.Expression]{
		Value: ast.NewNewExpression(class.Value.Text, args.Value),
		Next:  args.Next,
	}, nil
}

// parseArguments parses `'(' (exp (',' exp)*)? ')'`.
func (ts stream) parseArguments(pos int) (ParseResult[[]ast.Expression], error) {
	open, err := ts.expect(pos, token.LeftParen)
	if err != nil {
		return ParseResult[[]ast.Expression]{Next: pos}, err
	}
	args, stopErr := separated(open.Next, token.Comma, ts, ts.parseExpression)
	closing, err := ts.expectAfter(args.Next, token.RightParen)
	if err != nil {
		return ParseResult[[]ast.Expression]{Next: pos}, furthest(err, stopErr)
	}
	return ParseResult[[]ast.Expression]{Value: args.Value, Next: closing.Next}, nil
}
