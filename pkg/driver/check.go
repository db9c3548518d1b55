package driver

import (
	"log/slog"
	"time"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/lexer"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/logger"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/parser"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/typechecker"
)

// CheckOptions configures Check.
type CheckOptions struct {
	Parallel bool
	Workers  int
	Logger   *slog.Logger
}

// Report summarizes an accepted program.
type Report struct {
	Files    int
	Tokens   int
	Classes  int
	Methods  int
	Duration time.Duration
	Program  *ast.Program
}

// Check runs every source through the lexer and parser, merges the
// declarations into one program and type checks it. Any rejection is
// returned as a *DiagnosticError.
func Check(sources []Source, opts CheckOptions) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	start := time.Now()
	report := &Report{Files: len(sources)}
	finish := func(accepted bool) {
		report.Duration = time.Since(start)
		logger.LogCheckComplete(log, accepted, report.Files, report.Duration.String())
	}

	parts := make([]*ast.Program, 0, len(sources))
	origins := make(map[string]string)
	for _, src := range sources {
		program, tokens, err := ParseSource(src, log)
		if err != nil {
			finish(false)
			return nil, err
		}
		report.Tokens += tokens
		for _, method := range program.AllMethods() {
			if _, seen := origins[method.Name]; !seen {
				origins[method.Name] = src.Path
			}
		}
		parts = append(parts, program)
	}

	program := ast.Merge(parts...)
	report.Program = program
	report.Classes = len(program.Classes)
	report.Methods = len(program.AllMethods())

	logger.LogPhase(log, string(PhaseTypechecker))
	logger.LogChecking(log, report.Methods, opts.Parallel, opts.Workers)
	if _, err := typechecker.CheckProgram(program, &typechecker.Options{Parallel: opts.Parallel, Workers: opts.Workers}); err != nil {
		diag := typeDiagnostic(origins, err)
		logger.LogDiagnostic(log, string(PhaseTypechecker), diag.Diagnostic.Location.Path, 0, 0, err.Error())
		finish(false)
		return nil, diag
	}
	finish(true)
	return report, nil
}

// ParseSource tokenizes and parses one source, returning the program and its
// token count.
func ParseSource(src Source, log *slog.Logger) (*ast.Program, int, error) {
	if log == nil {
		log = logger.Discard()
	}
	logger.LogPhase(log, string(PhaseLexer))
	tokens, offsets, err := lexer.TokenizeWithOffsets(src.Text)
	if err != nil {
		diag := lexDiagnostic(src, err)
		logDiagnostic(log, diag)
		return nil, 0, diag
	}
	logger.LogLexing(log, src.Path, len(tokens))

	logger.LogPhase(log, string(PhaseParser))
	program, err := parser.Parse(tokens)
	if err != nil {
		diag := parseDiagnostic(src, offsets, err)
		logDiagnostic(log, diag)
		return nil, len(tokens), diag
	}
	logger.LogParsing(log, src.Path, len(program.Classes), len(program.Methods))
	return program, len(tokens), nil
}

// LocatedToken pairs a token with where it starts.
type LocatedToken struct {
	Token    token.Token
	Location DiagnosticLocation
}

// Tokenize lexes one source and locates every token.
func Tokenize(src Source) ([]LocatedToken, error) {
	tokens, offsets, err := lexer.TokenizeWithOffsets(src.Text)
	if err != nil {
		return nil, lexDiagnostic(src, err)
	}
	out := make([]LocatedToken, len(tokens))
	for i, tok := range tokens {
		out[i] = LocatedToken{Token: tok, Location: LocationAt(src.Path, src.Text, offsets[i])}
	}
	return out, nil
}

func logDiagnostic(log *slog.Logger, diag *DiagnosticError) {
	loc := diag.Diagnostic.Location
	logger.LogDiagnostic(log, string(diag.Diagnostic.Phase), loc.Path, loc.Line, loc.Column, diag.Err.Error())
}
