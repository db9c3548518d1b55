package typechecker

import (
	"sort"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
)

// Environment maps variable names to types. It is persistent: Extend returns
// a new environment and leaves the receiver untouched, so an environment
// captured before a scope opens stays valid after it closes. The zero value
// and a nil *Environment are both empty.
type Environment struct {
	parent *Environment
	name   string
	typ    ast.Type
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{}
}

// EnvironmentOf returns an environment holding the given bindings.
func EnvironmentOf(bindings map[string]ast.Type) *Environment {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	env := NewEnvironment()
	for _, name := range names {
		env = env.Extend(name, bindings[name])
	}
	return env
}

// Extend binds name to typ in a new environment. Later bindings shadow
// earlier ones.
func (e *Environment) Extend(name string, typ ast.Type) *Environment {
	return &Environment{parent: e, name: name, typ: typ}
}

// Lookup searches for a name from the innermost binding outwards.
func (e *Environment) Lookup(name string) (ast.Type, bool) {
	for env := e; env != nil; env = env.parent {
		if env.typ != nil && env.name == name {
			return env.typ, true
		}
	}
	return nil, false
}

// Bindings returns a snapshot of the visible bindings.
func (e *Environment) Bindings() map[string]ast.Type {
	out := make(map[string]ast.Type)
	for env := e; env != nil; env = env.parent {
		if env.typ == nil {
			continue
		}
		if _, shadowed := out[env.name]; !shadowed {
			out[env.name] = env.typ
		}
	}
	return out
}
