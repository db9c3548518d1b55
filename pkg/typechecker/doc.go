// Package typechecker implements JamaScript's static semantics. Types are
// computed bottom-up from already-typed subexpressions; there is no
// inference beyond that and no subtyping. Statements thread an immutable
// Environment: declarations return an extended environment while blocks,
// branches and loop bodies hand their caller the environment they were given,
// so inner bindings never escape their scope.
//
// CheckProgram builds the program-wide method table before any method body is
// checked. The table is read-only afterwards, which lets method bodies be
// checked concurrently.
package typechecker
