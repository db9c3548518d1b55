package typechecker

import (
	"errors"
	"fmt"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

// ErrorKind classifies type errors.
type ErrorKind string

const (
	ErrUnboundVariable     ErrorKind = "unbound variable"
	ErrOperandMismatch     ErrorKind = "operand type mismatch"
	ErrArityMismatch       ErrorKind = "arity mismatch"
	ErrArgumentMismatch    ErrorKind = "argument type mismatch"
	ErrUnknownMethod       ErrorKind = "unknown method"
	ErrNonBooleanGuard     ErrorKind = "non-boolean guard"
	ErrReturnMismatch      ErrorKind = "return type mismatch"
	ErrDuplicateMethod     ErrorKind = "duplicate method"
	ErrDuplicateParameter  ErrorKind = "duplicate parameter"
	ErrDeclarationMismatch ErrorKind = "declaration type mismatch"
)

// TypeError reports a program that is not type-safe.
type TypeError struct {
	Kind   ErrorKind
	Reason string
	Method string   // enclosing method, when known
	Node   ast.Node // offending node, nil for table-level errors
}

func (e *TypeError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("typechecker: %s (in method '%s')", e.Reason, e.Method)
	}
	return "typechecker: " + e.Reason
}

// KindOf returns the kind of a *TypeError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var te *TypeError
	if !errors.As(err, &te) {
		return "", false
	}
	return te.Kind, true
}

func typeErrorf(kind ErrorKind, format string, args ...any) *TypeError {
	return &TypeError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func nodeErrorf(node ast.Node, kind ErrorKind, format string, args ...any) *TypeError {
	err := typeErrorf(kind, format, args...)
	err.Node = node
	return err
}

// inMethod attaches the enclosing method name to a type error.
func inMethod(err error, method string) error {
	var te *TypeError
	if !errors.As(err, &te) || te.Method != "" {
		return err
	}
	annotated := *te
	annotated.Method = method
	return &annotated
}
