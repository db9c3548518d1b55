package ast

// Type is a JamaScript static type. Implementations are comparable values, so
// two types are equal exactly when `==` reports them equal; class types are
// nominal and compare by name.
type Type interface {
	String() string
	isType()
}

type PrimitiveKind string

const (
	PrimitiveInt    PrimitiveKind = "Int"
	PrimitiveBool   PrimitiveKind = "Boolean"
	PrimitiveString PrimitiveKind = "String"
	PrimitiveVoid   PrimitiveKind = "Void"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) String() string { return string(p.Kind) }
func (PrimitiveType) isType()          {}

type ClassType struct {
	Name string
}

func (c ClassType) String() string { return c.Name }
func (ClassType) isType()          {}

var (
	IntType    Type = PrimitiveType{Kind: PrimitiveInt}
	BoolType   Type = PrimitiveType{Kind: PrimitiveBool}
	StringType Type = PrimitiveType{Kind: PrimitiveString}
	VoidType   Type = PrimitiveType{Kind: PrimitiveVoid}
)
