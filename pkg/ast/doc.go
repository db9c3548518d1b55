// Package ast defines the JamaScript syntax tree produced by the parser and
// consumed by the type checker. Nodes are built once through the New*
// constructors (or the short helpers in dsl.go) and never mutated afterwards.
package ast
