package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/lexer"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/logger"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/parser"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/typechecker"
)

const (
	replBanner  = "jama repl: enter methods, statements or expressions. :help for commands."
	historyFile = ".jama_history"
	promptMain  = "jama> "
	promptCont  = "  ... "
)

func runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "jama repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return exitUsage
	}
	if err := logger.Init(logger.DefaultConfig()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	defer logger.Close()
	fmt.Println(replBanner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		f, err := os.Create(histPath)
		if err != nil {
			logger.Warn("History not saved", "path", histPath, "error", err)
			return
		}
		if _, err := ln.WriteHistory(f); err != nil {
			logger.Warn("History not saved", "path", histPath, "error", err)
		}
		_ = f.Close()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		if n, err := ln.ReadHistory(f); err == nil {
			logger.Debug("History loaded", "path", histPath, "entries", n)
		}
		_ = f.Close()
	}

	session := newReplSession()
	for {
		code, ok := readInput(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			out, quit := session.command(trimmed)
			if quit {
				return exitAccepted
			}
			fmt.Print(out)
			continue
		}
		out, err := session.eval(code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if err != nil {
			logger.Info("Input rejected", "error", err)
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(out)
	}
	return exitAccepted
}

// prompter is the part of *liner.State the reader needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readInput keeps reading continuation lines while the buffered input is a
// prefix of something that could still parse. It reports false once input
// is exhausted or the terminal fails.
func readInput(ln prompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "jama repl: %v\n", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parseReplInput(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// replInput is exactly one of a method, a statement or an expression.
type replInput struct {
	method *ast.MethodDefinition
	stmt   ast.Statement
	expr   ast.Expression
}

// parseReplInput decides from the first two tokens what src holds and
// requires it to use every token.
func parseReplInput(src string) (replInput, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return replInput{}, err
	}
	var in replInput
	var next int
	switch {
	case startsMethod(toks):
		res, err := parser.ParseMethod(toks, 0)
		if err != nil {
			return replInput{}, err
		}
		in.method, next = res.Value, res.Next
	case startsStatement(toks):
		res, err := parser.ParseStatement(toks, 0)
		if err != nil {
			return replInput{}, err
		}
		in.stmt, next = res.Value, res.Next
	default:
		expr, err := parser.ParseWholeExpression(toks)
		if err != nil {
			return replInput{}, err
		}
		return replInput{expr: expr}, nil
	}
	if next < len(toks) {
		return replInput{}, &parser.ParseError{Expected: parser.EndOfInput, Received: toks[next].String(), Position: next}
	}
	return in, nil
}

func startsMethod(toks []token.Token) bool {
	if len(toks) < 2 || toks[1].Kind != token.MethodName {
		return false
	}
	switch toks[0].Kind {
	case token.IntType, token.StringType, token.BooleanType, token.VoidType, token.ClassName:
		return true
	}
	return false
}

func startsStatement(toks []token.Token) bool {
	if len(toks) == 0 {
		return false
	}
	switch toks[0].Kind {
	case token.While, token.If, token.LeftBrace, token.Println, token.Return,
		token.IntType, token.StringType, token.BooleanType, token.ClassName, token.VoidType:
		return true
	}
	return false
}

// replSession accumulates methods and top-level variable bindings. Nothing is
// committed unless the input type checks.
type replSession struct {
	methods typechecker.MethodTable
	env     *typechecker.Environment
}

func newReplSession() *replSession {
	methods, _ := typechecker.NewMethodTable(nil)
	return &replSession{methods: methods, env: typechecker.NewEnvironment()}
}

func (s *replSession) eval(src string) (string, error) {
	in, err := parseReplInput(src)
	if err != nil {
		return "", err
	}
	switch {
	case in.method != nil:
		methods, err := s.methods.With(in.method)
		if err != nil {
			return "", err
		}
		if err := typechecker.New(methods).CheckMethod(in.method); err != nil {
			return "", err
		}
		s.methods = methods
		return "defined " + signature(in.method), nil
	case in.stmt != nil:
		env, err := typechecker.New(s.methods).CheckStatement(s.env, in.stmt, nil)
		if err != nil {
			return "", err
		}
		s.env = env
		if decl, ok := in.stmt.(*ast.VariableDeclaration); ok {
			return fmt.Sprintf("%s : %s", decl.Name, decl.Type), nil
		}
		return "ok", nil
	default:
		typ, err := typechecker.New(s.methods).TypeOf(s.env, in.expr)
		if err != nil {
			return "", err
		}
		return typ.String(), nil
	}
}

func (s *replSession) command(cmd string) (string, bool) {
	var b strings.Builder
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case ":quit", ":q":
		return "", true
	case ":env":
		bindings := s.env.Bindings()
		names := make([]string, 0, len(bindings))
		for name := range bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "%s : %s\n", name, bindings[name])
		}
	case ":methods":
		for _, name := range s.methods.Names() {
			method, _ := s.methods.Lookup(name)
			fmt.Fprintln(&b, signature(method))
		}
	case ":reset":
		*s = *newReplSession()
	case ":help":
		b.WriteString(":env      list variables in scope\n")
		b.WriteString(":methods  list defined methods\n")
		b.WriteString(":reset    forget all methods and variables\n")
		b.WriteString(":quit     leave the repl\n")
	default:
		b.WriteString("unknown command. Type :help for a list.\n")
	}
	return b.String(), false
}

func signature(method *ast.MethodDefinition) string {
	params := make([]string, len(method.Parameters))
	for i, p := range method.Parameters {
		params[i] = p.Type.String()
	}
	return fmt.Sprintf("%s %s(%s)", method.ReturnType, method.Name, strings.Join(params, ", "))
}
