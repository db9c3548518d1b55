package typechecker

import (
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

// CheckStatement checks stmt under env and returns the environment for the
// statement that follows it. Only a variable declaration changes that
// environment. returnType is the enclosing method's declared return type, or
// nil outside of any method.
func (c *Checker) CheckStatement(env *Environment, stmt ast.Statement, returnType ast.Type) (*Environment, error) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		typ, err := c.TypeOf(env, s.Initializer)
		if err != nil {
			return nil, err
		}
		if typ != s.Type {
			return nil, nodeErrorf(s, ErrDeclarationMismatch,
				"variable '%s' is declared %s but initialized with %s", s.Name, s.Type, typ)
		}
		return env.Extend(s.Name, s.Type), nil
	case *ast.BlockStatement:
		inner := env
		for _, child := range s.Body {
			next, err := c.CheckStatement(inner, child, returnType)
			if err != nil {
				return nil, err
			}
			inner = next
		}
		return env, nil
	case *ast.IfStatement:
		if err := c.checkGuard(env, "if", s.Condition); err != nil {
			return nil, err
		}
		if _, err := c.CheckStatement(env, s.Then, returnType); err != nil {
			return nil, err
		}
		if _, err := c.CheckStatement(env, s.Else, returnType); err != nil {
			return nil, err
		}
		return env, nil
	case *ast.WhileStatement:
		if err := c.checkGuard(env, "while", s.Condition); err != nil {
			return nil, err
		}
		if _, err := c.CheckStatement(env, s.Body, returnType); err != nil {
			return nil, err
		}
		return env, nil
	case *ast.PrintlnStatement:
		if _, err := c.TypeOf(env, s.Argument); err != nil {
			return nil, err
		}
		return env, nil
	case *ast.ReturnStatement:
		typ, err := c.TypeOf(env, s.Argument)
		if err != nil {
			return nil, err
		}
		if returnType == nil {
			return nil, nodeErrorf(s, ErrReturnMismatch, "return outside of a method")
		}
		if typ != returnType {
			return nil, nodeErrorf(s, ErrReturnMismatch, "return of %s where %s is declared", typ, returnType)
		}
		return env, nil
	case nil:
		return nil, typeErrorf(ErrDeclarationMismatch, "missing statement")
	default:
		return nil, nodeErrorf(stmt, ErrDeclarationMismatch, "unsupported statement %T", stmt)
	}
}

func (c *Checker) checkGuard(env *Environment, construct string, cond ast.Expression) error {
	typ, err := c.TypeOf(env, cond)
	if err != nil {
		return err
	}
	if typ != ast.BoolType {
		return nodeErrorf(cond, ErrNonBooleanGuard, "%s condition must be Boolean (got %s)", construct, typ)
	}
	return nil
}
