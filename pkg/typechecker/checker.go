package typechecker

import (
	"fmt"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

// Checker types expressions and statements against a fixed method table.
// A Checker holds no mutable state and may be shared between goroutines.
type Checker struct {
	methods MethodTable
}

// New returns a checker that resolves calls through methods.
func New(methods MethodTable) *Checker {
	return &Checker{methods: methods}
}

// Methods returns the checker's method table.
func (c *Checker) Methods() MethodTable { return c.methods }

// TypeOf types expr with an empty method table, so any call is reported as an
// unknown method.
func TypeOf(env *Environment, expr ast.Expression) (ast.Type, error) {
	return New(MethodTable{}).TypeOf(env, expr)
}

// TypeOf computes the type of expr under env.
func (c *Checker) TypeOf(env *Environment, expr ast.Expression) (ast.Type, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return ast.IntType, nil
	case *ast.BooleanLiteral:
		return ast.BoolType, nil
	case *ast.StringLiteral:
		return ast.StringType, nil
	case *ast.Identifier:
		typ, ok := env.Lookup(e.Name)
		if !ok {
			return nil, nodeErrorf(e, ErrUnboundVariable, "variable '%s' is not in scope", e.Name)
		}
		return typ, nil
	case *ast.BinaryExpression:
		return c.typeOfBinary(env, e)
	case *ast.MethodCall:
		return c.typeOfCall(env, e)
	case *ast.NewExpression:
		for _, arg := range e.Arguments {
			if _, err := c.TypeOf(env, arg); err != nil {
				return nil, err
			}
		}
		return ast.ClassType{Name: e.ClassName}, nil
	case nil:
		return nil, typeErrorf(ErrOperandMismatch, "missing expression")
	default:
		return nil, nodeErrorf(expr, ErrOperandMismatch, "unsupported expression %T", expr)
	}
}

func (c *Checker) typeOfBinary(env *Environment, expr *ast.BinaryExpression) (ast.Type, error) {
	left, err := c.TypeOf(env, expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.TypeOf(env, expr.Right)
	if err != nil {
		return nil, err
	}
	switch {
	case expr.Operator.IsArithmetic():
		if left != ast.IntType || right != ast.IntType {
			return nil, operandError(expr, left, right)
		}
		return ast.IntType, nil
	case expr.Operator.IsRelational():
		if left != ast.IntType || right != ast.IntType {
			return nil, operandError(expr, left, right)
		}
		return ast.BoolType, nil
	case expr.Operator == ast.OpEqual:
		if left != right || left == ast.VoidType {
			return nil, nodeErrorf(expr, ErrOperandMismatch,
				"operator '==' requires operands of the same type (got %s and %s)", left, right)
		}
		return ast.BoolType, nil
	default:
		return nil, nodeErrorf(expr, ErrOperandMismatch, "unsupported binary operator %q", string(expr.Operator))
	}
}

func operandError(expr *ast.BinaryExpression, left, right ast.Type) *TypeError {
	return nodeErrorf(expr, ErrOperandMismatch,
		"operator '%s' requires Int operands (got %s and %s)", expr.Operator, left, right)
}

// typeOfCall resolves the method by name in the program-wide table. A
// receiver, when present, must itself be well typed.
func (c *Checker) typeOfCall(env *Environment, call *ast.MethodCall) (ast.Type, error) {
	if call.Receiver != nil {
		if _, err := c.TypeOf(env, call.Receiver); err != nil {
			return nil, err
		}
	}
	method, ok := c.methods.Lookup(call.Method)
	if !ok {
		return nil, nodeErrorf(call, ErrUnknownMethod, "no method named '%s'", call.Method)
	}
	if len(call.Arguments) != len(method.Parameters) {
		return nil, nodeErrorf(call, ErrArityMismatch,
			"method '%s' expects %d %s, got %d", method.Name, len(method.Parameters),
			plural(len(method.Parameters), "argument"), len(call.Arguments))
	}
	for i, arg := range call.Arguments {
		got, err := c.TypeOf(env, arg)
		if err != nil {
			return nil, err
		}
		want := method.Parameters[i].Type
		if got != want {
			return nil, nodeErrorf(arg, ErrArgumentMismatch,
				"argument %d of '%s' must be %s (got %s)", i+1, method.Name, want, got)
		}
	}
	return method.ReturnType, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return fmt.Sprintf("%ss", word)
}
