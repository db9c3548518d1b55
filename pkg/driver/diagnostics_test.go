package driver

import (
	"testing"
)

func TestLocationAt(t *testing.T) {
	text := "ab\ncdé\n\nx"
	cases := []struct {
		offset       int
		line, column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{7, 2, 4}, // after the two-byte é
		{9, 4, 1},
		{100, 4, 2},
	}
	for _, tc := range cases {
		loc := LocationAt("f.jama", text, tc.offset)
		if loc.Line != tc.line || loc.Column != tc.column {
			t.Fatalf("offset %d: got %d:%d, want %d:%d", tc.offset, loc.Line, loc.Column, tc.line, tc.column)
		}
	}
}

func TestDescribeDiagnostic(t *testing.T) {
	cases := []struct {
		diag Diagnostic
		want string
	}{
		{
			Diagnostic{Phase: PhaseParser, Message: "parser: expected \";\", received end of input at token 4",
				Location: DiagnosticLocation{Path: "a.jama", Line: 1, Column: 11}},
			`parser: a.jama:1:11 expected ";", received end of input at token 4`,
		},
		{
			Diagnostic{Phase: PhaseTypechecker, Message: "typechecker: no method named 'f'"},
			"typechecker: no method named 'f'",
		},
		{
			Diagnostic{Phase: PhaseTypechecker, Message: "typechecker: x", Location: DiagnosticLocation{Path: "b.jama"}},
			"typechecker: b.jama x",
		},
		{
			Diagnostic{Phase: PhaseLexer, Message: "lexer: unexpected character", Location: DiagnosticLocation{Line: 2, Column: 3}},
			"lexer: line 2, column 3 unexpected character",
		},
	}
	for _, tc := range cases {
		if got := DescribeDiagnostic(tc.diag); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}
