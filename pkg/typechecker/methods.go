package typechecker

import (
	"sort"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

// MethodTable is the program-wide, name-keyed set of method declarations.
// It is never modified after construction.
type MethodTable struct {
	byName map[string]*ast.MethodDefinition
}

// NewMethodTable indexes methods by name and rejects duplicate names.
func NewMethodTable(methods []*ast.MethodDefinition) (MethodTable, error) {
	table := MethodTable{byName: make(map[string]*ast.MethodDefinition, len(methods))}
	for _, method := range methods {
		if method == nil {
			continue
		}
		if _, exists := table.byName[method.Name]; exists {
			return MethodTable{}, typeErrorf(ErrDuplicateMethod, "method '%s' is declared more than once", method.Name)
		}
		table.byName[method.Name] = method
	}
	return table, nil
}

// Lookup returns the method declared under name.
func (t MethodTable) Lookup(name string) (*ast.MethodDefinition, bool) {
	method, ok := t.byName[name]
	return method, ok
}

// Len returns the number of methods.
func (t MethodTable) Len() int { return len(t.byName) }

// Names returns the method names in sorted order.
func (t MethodTable) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a table that also holds method. The receiver is unchanged.
func (t MethodTable) With(method *ast.MethodDefinition) (MethodTable, error) {
	if _, exists := t.byName[method.Name]; exists {
		return MethodTable{}, typeErrorf(ErrDuplicateMethod, "method '%s' is declared more than once", method.Name)
	}
	next := MethodTable{byName: make(map[string]*ast.MethodDefinition, len(t.byName)+1)}
	for name, existing := range t.byName {
		next.byName[name] = existing
	}
	next.byName[method.Name] = method
	return next, nil
}
