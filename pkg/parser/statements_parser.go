package parser

import (
	"fmt"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

func (ts stream) parseStatement(pos int) (ParseResult[ast.Statement], error) {
	tok, ok := ts.at(pos)
	if !ok {
		return ParseResult[ast.Statement]{Next: pos}, ts.errorAt(pos, "statement")
	}
	switch tok.Kind {
	case token.While:
		return ts.parseWhile(pos)
	case token.If:
		return ts.parseIf(pos)
	case token.LeftBrace:
		block, err := ts.parseBlock(pos)
		if err != nil {
			return ParseResult[ast.Statement]{Next: pos}, err
		}
		return ParseResult[ast.Statement]{Value: block.Value, Next: block.Next}, nil
	case token.Println:
		return ts.parsePrintln(pos)
	case token.Return:
		return ts.parseReturn(pos)
	case token.IntType, token.StringType, token.BooleanType, token.ClassName:
		return ts.parseVariableDeclaration(pos)
	default:
		return ParseResult[ast.Statement]{Next: pos}, ts.errorAt(pos, "statement")
	}
}

// parseCondition parses `'(' exp ')'`.
func (ts stream) parseCondition(pos int) (ParseResult[ast.Expression], error) {
	open, err := ts.expect(pos, token.LeftParen)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	cond, err := ts.parseExpression(open.Next)
	if err != nil {
		return cond, err
	}
	closing, err := ts.expectAfter(cond.Next, token.RightParen)
	if err != nil {
		return ParseResult[ast.Expression]{Next: pos}, err
	}
	return ParseResult[ast.Expression]{Value: cond.Value, Next: closing.Next}, nil
}

func (ts stream) parseWhile(pos int) (ParseResult[ast.Statement], error) {
	kw, err := ts.expect(pos, token.While)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	cond, err := ts.parseCondition(kw.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	body, err := ts.parseStatement(cond.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	return ParseResult[ast.Statement]{Value: ast.NewWhileStatement(cond.Value, body.Value), Next: body.Next}, nil
}

// parseIf requires both branches.
func (ts stream) parseIf(pos int) (ParseResult[ast.Statement], error) {
	kw, err := ts.expect(pos, token.If)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	cond, err := ts.parseCondition(kw.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	then, err := ts.parseStatement(cond.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	elseKw, err := ts.expect(then.Next, token.Else)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	els, err := ts.parseStatement(elseKw.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	return ParseResult[ast.Statement]{
		Value: ast.NewIfStatement(cond.Value, then.Value, els.Value),
		Next:  els.Next,
	}, nil
}

// parseBlock parses `'{' stmt* '}'`.
func (ts stream) parseBlock(pos int) (ParseResult[*ast.BlockStatement], error) {
	open, err := ts.expect(pos, token.LeftBrace)
	if err != nil {
		return ParseResult[*ast.BlockStatement]{Next: pos}, err
	}
	body, stopErr := many(open.Next, ts.parseStatement)
	closing, err := ts.expect(body.Next, token.RightBrace)
	if err != nil {
		return ParseResult[*ast.BlockStatement]{Next: pos}, furthest(err, stopErr)
	}
	return ParseResult[*ast.BlockStatement]{Value: ast.NewBlockStatement(body.Value), Next: closing.Next}, nil
}

func (ts stream) parsePrintln(pos int) (ParseResult[ast.Statement], error) {
	kw, err := ts.expect(pos, token.Println)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	arg, err := ts.parseCondition(kw.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	semi, err := ts.expect(arg.Next, token.Semicolon)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	return ParseResult[ast.Statement]{Value: ast.NewPrintlnStatement(arg.Value), Next: semi.Next}, nil
}

func (ts stream) parseReturn(pos int) (ParseResult[ast.Statement], error) {
	kw, err := ts.expect(pos, token.Return)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	arg, err := ts.parseExpression(kw.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	semi, err := ts.expectAfter(arg.Next, token.Semicolon)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	return ParseResult[ast.Statement]{Value: ast.NewReturnStatement(arg.Value), Next: semi.Next}, nil
}

// parseVariableDeclaration parses `type name '=' exp ';'`. A literal
// initializer must be of the declared type's literal kind.
func (ts stream) parseVariableDeclaration(pos int) (ParseResult[ast.Statement], error) {
	typ, err := ts.parseValueType(pos)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	name, err := ts.expect(typ.Next, token.Identifier)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	assign, err := ts.expect(name.Next, token.Assign)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	initializer, err := ts.parseExpression(assign.Next)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	if lit, ok := initializer.Value.(ast.Literal); ok && !literalMatches(typ.Value, lit) {
		return ParseResult[ast.Statement]{Next: pos}, ts.errorAt(assign.Next, fmt.Sprintf("%s initializer", typ.Value))
	}
	semi, err := ts.expectAfter(initializer.Next, token.Semicolon)
	if err != nil {
		return ParseResult[ast.Statement]{Next: pos}, err
	}
	return ParseResult[ast.Statement]{
		Value: ast.NewVariableDeclaration(typ.Value, name.Value.Text, initializer.Value),
		Next:  semi.Next,
	}, nil
}

func literalMatches(typ ast.Type, lit ast.Literal) bool {
	switch lit.(type) {
	case *ast.IntegerLiteral:
		return typ == ast.IntType
	case *ast.BooleanLiteral:
		return typ == ast.BoolType
	case *ast.StringLiteral:
		return typ == ast.StringType
	default:
		return false
	}
}
