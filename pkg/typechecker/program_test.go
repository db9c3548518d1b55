package typechecker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

func TestCheckProgramAcceptsWellTypedProgram(t *testing.T) {
	program := ast.NewProgram(
		[]*ast.ClassDefinition{
			ast.ClassDef("Counter", "", []*ast.FieldDefinition{ast.Field(ast.IntType, "n")},
				ast.Method(ast.IntType, "current", nil, ast.Ret(ast.Int(0)))),
		},
		[]*ast.MethodDefinition{
			ast.Method(ast.VoidType, "main", nil,
				ast.Var(ast.Ty("Counter"), "c", ast.New("Counter")),
				ast.Var(ast.IntType, "total", ast.Call("sum", ast.CallOn(ast.ID("c"), "current"), ast.Int(2))),
				ast.While(ast.Bin(ast.OpLess, ast.ID("total"), ast.Int(10)),
					ast.Println(ast.ID("total"))),
			),
			ast.Method(ast.IntType, "sum",
				[]*ast.Parameter{ast.Param(ast.IntType, "a"), ast.Param(ast.IntType, "b")},
				ast.Ret(ast.Bin(ast.OpPlus, ast.ID("a"), ast.ID("b")))),
		},
	)
	for _, parallel := range []bool{false, true} {
		res, err := CheckProgram(program, &Options{Parallel: parallel, Workers: 2})
		if err != nil {
			t.Fatalf("parallel=%v: unexpected error: %v", parallel, err)
		}
		if res.Methods.Len() != 3 {
			t.Fatalf("method table has %d entries, want 3", res.Methods.Len())
		}
	}
}

func TestCheckProgramEmpty(t *testing.T) {
	if _, err := CheckProgram(ast.Prog(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := CheckProgram(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckProgramSkipsNilMethods(t *testing.T) {
	program := ast.Prog(
		ast.Method(ast.IntType, "one", nil, ast.Ret(ast.Int(1))),
		nil,
		ast.Method(ast.IntType, "two", nil, ast.Ret(ast.Call("one"))),
		nil,
	)
	for _, parallel := range []bool{false, true} {
		res, err := CheckProgram(program, &Options{Parallel: parallel})
		if err != nil {
			t.Fatalf("parallel=%v: unexpected error: %v", parallel, err)
		}
		if res.Methods.Len() != 2 {
			t.Fatalf("parallel=%v: method table has %d entries, want 2", parallel, res.Methods.Len())
		}
	}
	if err := New(MethodTable{}).CheckMethod(nil); err != nil {
		t.Fatalf("CheckMethod(nil) = %v", err)
	}
}

func TestDuplicateMethodRejectedBeforeBodies(t *testing.T) {
	// The bodies are ill-typed; the duplicate must still be what is reported.
	program := ast.Prog(
		ast.Method(ast.IntType, "f", nil, ast.Ret(ast.ID("unbound"))),
		ast.Method(ast.IntType, "f", nil, ast.Ret(ast.Bool(true))),
	)
	_, err := CheckProgram(program, nil)
	expectKind(t, err, ErrDuplicateMethod)
}

func TestDuplicateAcrossClassAndTopLevel(t *testing.T) {
	program := ast.NewProgram(
		[]*ast.ClassDefinition{ast.ClassDef("A", "", nil, ast.Method(ast.IntType, "f", nil, ast.Ret(ast.Int(1))))},
		[]*ast.MethodDefinition{ast.Method(ast.IntType, "f", nil, ast.Ret(ast.Int(2)))},
	)
	_, err := CheckProgram(program, nil)
	expectKind(t, err, ErrDuplicateMethod)
}

func TestDuplicateParameterRejected(t *testing.T) {
	program := ast.Prog(ast.Method(ast.IntType, "f",
		[]*ast.Parameter{ast.Param(ast.IntType, "x"), ast.Param(ast.StringType, "x")},
		ast.Ret(ast.Int(1))))
	_, err := CheckProgram(program, nil)
	te := expectKind(t, err, ErrDuplicateParameter)
	if te.Method != "f" {
		t.Fatalf("method = %q, want f", te.Method)
	}
}

func TestMethodBodySeesOnlyParameters(t *testing.T) {
	program := ast.Prog(
		ast.Method(ast.VoidType, "a", nil, ast.Var(ast.IntType, "shared", ast.Int(1))),
		ast.Method(ast.VoidType, "b", nil, ast.Println(ast.ID("shared"))),
	)
	_, err := CheckProgram(program, nil)
	te := expectKind(t, err, ErrUnboundVariable)
	if te.Method != "b" || !strings.Contains(te.Error(), "(in method 'b')") {
		t.Fatalf("unexpected error %v", te)
	}
}

func TestParallelReportsEarliestFailure(t *testing.T) {
	var methods []*ast.MethodDefinition
	for i := 0; i < 32; i++ {
		body := ast.Ret(ast.Int(int64(i)))
		if i == 7 || i == 20 {
			body = ast.Ret(ast.Bool(true))
		}
		methods = append(methods, ast.Method(ast.IntType, fmt.Sprintf("m%d", i), nil, body))
	}
	program := ast.Prog(methods...)
	for run := 0; run < 10; run++ {
		_, err := CheckProgram(program, &Options{Parallel: true, Workers: 8})
		te := expectKind(t, err, ErrReturnMismatch)
		if te.Method != "m7" {
			t.Fatalf("run %d: failure reported for %s, want m7", run, te.Method)
		}
	}
}

func TestMethodTableWith(t *testing.T) {
	table := mustTable(t, ast.Method(ast.IntType, "f", nil, ast.Ret(ast.Int(1))))
	next, err := table.With(ast.Method(ast.IntType, "g", nil, ast.Ret(ast.Int(1))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 || next.Len() != 2 {
		t.Fatalf("With modified the receiver or dropped entries: %d, %d", table.Len(), next.Len())
	}
	if got := strings.Join(next.Names(), ","); got != "f,g" {
		t.Fatalf("names = %s", got)
	}
	_, err = next.With(ast.Method(ast.IntType, "g", nil))
	expectKind(t, err, ErrDuplicateMethod)
	if kind, ok := KindOf(fmt.Errorf("wrapped: %w", err)); !ok || kind != ErrDuplicateMethod {
		t.Fatalf("KindOf = %v, %v", kind, ok)
	}
}
