package parser

import (
	"testing"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/lexer"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

func mustTokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	return toks
}

func mustParseExpression(t *testing.T, source string) ast.Expression {
	t.Helper()
	toks := mustTokenize(t, source)
	res, err := ParseExpression(toks, 0)
	if err != nil {
		t.Fatalf("parse expression %q: %v", source, err)
	}
	if res.Next != len(toks) {
		t.Fatalf("parse expression %q consumed %d of %d tokens", source, res.Next, len(toks))
	}
	return res.Value
}

func mustParseStatement(t *testing.T, source string) ast.Statement {
	t.Helper()
	toks := mustTokenize(t, source)
	res, err := ParseStatement(toks, 0)
	if err != nil {
		t.Fatalf("parse statement %q: %v", source, err)
	}
	if res.Next != len(toks) {
		t.Fatalf("parse statement %q consumed %d of %d tokens", source, res.Next, len(toks))
	}
	return res.Value
}

func mustParseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := Parse(mustTokenize(t, source))
	if err != nil {
		t.Fatalf("parse program: %v", err)
	}
	return program
}

func expectParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected parse error, got nil")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	return pe
}
