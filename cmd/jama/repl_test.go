package main

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/parser"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/typechecker"
)

func TestReplSessionEval(t *testing.T) {
	s := newReplSession()
	steps := []struct {
		input string
		want  string
	}{
		{"Int add(Int a, Int b) { return a + b; }", "defined Int add(Int, Int)"},
		{"Int x = add(1, 2);", "x : Int"},
		{"x * 2 == 6", "Boolean"},
		{"{ Int hidden = 1; }", "ok"},
		{"new Point(x)", "Point"},
		{`println("hi");`, "ok"},
	}
	for _, step := range steps {
		got, err := s.eval(step.input)
		if err != nil {
			t.Fatalf("eval %q: %v", step.input, err)
		}
		if got != step.want {
			t.Fatalf("eval %q = %q, want %q", step.input, got, step.want)
		}
	}
	if _, err := s.eval("hidden"); err == nil {
		t.Fatalf("block binding should not be visible at top level")
	} else if kind, _ := typechecker.KindOf(err); kind != typechecker.ErrUnboundVariable {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestReplSessionRejectsWithoutCommitting(t *testing.T) {
	s := newReplSession()
	if _, err := s.eval("Int f() { return true; }"); err == nil {
		t.Fatalf("expected type error")
	}
	if _, ok := s.methods.Lookup("f"); ok {
		t.Fatalf("ill-typed method was committed")
	}
	if _, err := s.eval(`Int y = "s" + 1;`); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := s.env.Lookup("y"); ok {
		t.Fatalf("ill-typed declaration was committed")
	}
	if _, err := s.eval("return 1;"); err == nil {
		t.Fatalf("expected return outside of a method to be rejected")
	}
	if _, err := s.eval("Void g() { } Void h() { }"); err == nil {
		t.Fatalf("expected trailing input error")
	}
}

func TestReplSessionRecursiveMethod(t *testing.T) {
	s := newReplSession()
	src := "Int fact(Int n) { if (n < 2) { return 1; } else { return n * fact(n - 1); } }"
	if _, err := s.eval(src); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if _, err := s.eval(src); err == nil {
		t.Fatalf("expected redefinition to be rejected")
	}
}

func TestParseReplInputIncomplete(t *testing.T) {
	for _, src := range []string{"Int f(Int a) {", "while (true) {", "Int x = 1", "(1 + 2", "1 +", "Int x = 1 +", "println(1 <", "a.size() *"} {
		_, err := parseReplInput(src)
		if !parser.IsIncomplete(err) {
			t.Fatalf("%q: expected incomplete input, got %v", src, err)
		}
	}
	for _, src := range []string{"Int x = ;", "1 )"} {
		_, err := parseReplInput(src)
		if err == nil || parser.IsIncomplete(err) {
			t.Fatalf("%q: expected a definite parse error, got %v", src, err)
		}
	}
}

func TestReplCommands(t *testing.T) {
	s := newReplSession()
	if _, err := s.eval("String name = \"jama\";"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if _, err := s.eval("Void hello(String who) { println(who); }"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if out, _ := s.command(":env"); out != "name : String\n" {
		t.Fatalf(":env = %q", out)
	}
	if out, _ := s.command(":methods"); out != "Void hello(String)\n" {
		t.Fatalf(":methods = %q", out)
	}
	if out, _ := s.command(":bogus"); !strings.Contains(out, "unknown command") {
		t.Fatalf(":bogus = %q", out)
	}
	s.command(":reset")
	if out, _ := s.command(":env"); out != "" {
		t.Fatalf("expected empty env after reset, got %q", out)
	}
	if _, quit := s.command(":quit"); !quit {
		t.Fatalf(":quit should end the session")
	}
}

type scriptedPrompter struct {
	lines   []string
	prompts []string
	err     error
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func TestReadInputContinuesIncompleteInput(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"Int x = 1 +", "2;", "x"}}
	src, ok := readInput(p, promptMain, promptCont)
	if !ok || src != "Int x = 1 +\n2;" {
		t.Fatalf("readInput = %q, %v", src, ok)
	}
	if len(p.prompts) != 2 || p.prompts[0] != promptMain || p.prompts[1] != promptCont {
		t.Fatalf("unexpected prompts %q", p.prompts)
	}
	src, ok = readInput(p, promptMain, promptCont)
	if !ok || src != "x" {
		t.Fatalf("readInput = %q, %v", src, ok)
	}
	if _, ok := readInput(p, promptMain, promptCont); ok {
		t.Fatalf("expected end of input")
	}
}

func TestReadInputStopsOnTerminalError(t *testing.T) {
	p := &scriptedPrompter{err: errors.New("terminal gone")}
	if _, ok := readInput(p, promptMain, promptCont); ok {
		t.Fatalf("expected a terminal error to end the session")
	}
	if len(p.prompts) != 1 {
		t.Fatalf("expected a single prompt, got %d", len(p.prompts))
	}
}
