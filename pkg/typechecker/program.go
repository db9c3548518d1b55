package typechecker

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

// Options tunes CheckProgram.
type Options struct {
	// Parallel checks method bodies concurrently once the method table is built.
	Parallel bool
	// Workers caps concurrent method checks. Zero means GOMAXPROCS.
	Workers int
}

// Result describes a program that passed the type checker.
type Result struct {
	Methods MethodTable
}

// CheckProgram builds the method table and checks every method body. When
// several methods are ill-typed, the error for the earliest declared one is
// returned regardless of Options.Parallel.
func CheckProgram(program *ast.Program, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if program == nil {
		program = ast.NewProgram(nil, nil)
	}
	methods := declaredMethods(program.AllMethods())
	table, err := NewMethodTable(methods)
	if err != nil {
		return nil, err
	}
	checker := New(table)

	if !opts.Parallel || len(methods) < 2 {
		for _, method := range methods {
			if err := checker.CheckMethod(method); err != nil {
				return nil, err
			}
		}
		return &Result{Methods: table}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	errs := make([]error, len(methods))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, method := range methods {
		i, method := i, method
		g.Go(func() error {
			errs[i] = checker.CheckMethod(method)
			return nil
		})
	}
	// goroutines never fail; each method's error lands in errs[i]
	g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &Result{Methods: table}, nil
}

// declaredMethods drops nil entries left by partially built programs.
func declaredMethods(all []*ast.MethodDefinition) []*ast.MethodDefinition {
	methods := make([]*ast.MethodDefinition, 0, len(all))
	for _, method := range all {
		if method != nil {
			methods = append(methods, method)
		}
	}
	return methods
}

// CheckMethod checks a method body from an environment holding only its
// parameters. A nil method has nothing to check.
func (c *Checker) CheckMethod(method *ast.MethodDefinition) error {
	if method == nil {
		return nil
	}
	env, err := ParameterEnvironment(method)
	if err != nil {
		return err
	}
	if method.Body == nil {
		return nil
	}
	if _, err := c.CheckStatement(env, method.Body, method.ReturnType); err != nil {
		return inMethod(err, method.Name)
	}
	return nil
}

// ParameterEnvironment binds a method's parameters, rejecting repeated names.
func ParameterEnvironment(method *ast.MethodDefinition) (*Environment, error) {
	env := NewEnvironment()
	seen := make(map[string]struct{}, len(method.Parameters))
	for _, param := range method.Parameters {
		if _, dup := seen[param.Name]; dup {
			err := nodeErrorf(param, ErrDuplicateParameter, "parameter '%s' is declared more than once", param.Name)
			err.Method = method.Name
			return nil, err
		}
		seen[param.Name] = struct{}{}
		env = env.Extend(param.Name, param.Type)
	}
	return env, nil
}
