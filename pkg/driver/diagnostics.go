package driver

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/lexer"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/parser"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/typechecker"
)

// Phase names the stage that rejected a program.
type Phase string

const (
	PhaseLexer       Phase = "lexer"
	PhaseParser      Phase = "parser"
	PhaseTypechecker Phase = "typechecker"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic is a rejection rendered for people.
type Diagnostic struct {
	Phase    Phase
	Message  string
	Location DiagnosticLocation
}

// DiagnosticError wraps a diagnostic together with the stage error behind it.
type DiagnosticError struct {
	Diagnostic Diagnostic
	Err        error
}

func (e *DiagnosticError) Error() string {
	return DescribeDiagnostic(e.Diagnostic)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }

// LocationAt converts a byte offset into a 1-based line and column. Columns
// count runes. Offsets past the end of text point just after its last
// character.
func LocationAt(path, text string, offset int) DiagnosticLocation {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	column := utf8.RuneCountInString(prefix[lineStart:]) + 1
	return DiagnosticLocation{Path: path, Line: line, Column: column}
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	prefix := string(diag.Phase) + ":"
	if strings.HasPrefix(message, prefix) {
		message = strings.TrimSpace(strings.TrimPrefix(message, prefix))
	}
	location := formatDiagnosticLocation(diag.Location)
	if location != "" {
		return fmt.Sprintf("%s %s %s", prefix, location, message)
	}
	return fmt.Sprintf("%s %s", prefix, message)
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}

// lexDiagnostic locates a tokenizer failure in src.
func lexDiagnostic(src Source, err error) *DiagnosticError {
	diag := Diagnostic{Phase: PhaseLexer, Message: err.Error(), Location: DiagnosticLocation{Path: src.Path}}
	var le *lexer.LexError
	if errors.As(err, &le) {
		diag.Location = LocationAt(src.Path, src.Text, le.Offset)
	}
	return &DiagnosticError{Diagnostic: diag, Err: err}
}

// parseDiagnostic maps the failing token index back through offsets.
func parseDiagnostic(src Source, offsets []int, err error) *DiagnosticError {
	diag := Diagnostic{Phase: PhaseParser, Message: err.Error(), Location: DiagnosticLocation{Path: src.Path}}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		offset := len(src.Text)
		if pe.Position >= 0 && pe.Position < len(offsets) {
			offset = offsets[pe.Position]
		}
		diag.Location = LocationAt(src.Path, src.Text, offset)
	}
	return &DiagnosticError{Diagnostic: diag, Err: err}
}

// typeDiagnostic attributes a type error to the file declaring the failing
// method, when known.
func typeDiagnostic(origins map[string]string, err error) *DiagnosticError {
	diag := Diagnostic{Phase: PhaseTypechecker, Message: err.Error()}
	var te *typechecker.TypeError
	if errors.As(err, &te) && te.Method != "" {
		diag.Location.Path = origins[te.Method]
	}
	return &DiagnosticError{Diagnostic: diag, Err: err}
}
