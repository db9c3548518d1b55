package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

// Type helpers.

// Ty maps a type name to its Type: the primitive names map to primitives and
// any other name to a class type.
func Ty(name string) Type {
	switch PrimitiveKind(name) {
	case PrimitiveInt, PrimitiveBool, PrimitiveString, PrimitiveVoid:
		return PrimitiveType{Kind: PrimitiveKind(name)}
	}
	return ClassType{Name: name}
}

// Expression helpers.

func Bin(operator Operator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Call(name string, args ...Expression) *MethodCall {
	return NewMethodCall(nil, name, args)
}

func CallOn(receiver Expression, name string, args ...Expression) *MethodCall {
	return NewMethodCall(receiver, name, args)
}

func New(className string, args ...Expression) *NewExpression {
	return NewNewExpression(className, args)
}

// Statement helpers.

func Var(typ Type, name string, initializer Expression) *VariableDeclaration {
	return NewVariableDeclaration(typ, name, initializer)
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func If(condition Expression, then, els Statement) *IfStatement {
	return NewIfStatement(condition, then, els)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func Println(argument Expression) *PrintlnStatement {
	return NewPrintlnStatement(argument)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

// Declaration helpers.

func Param(typ Type, name string) *Parameter {
	return NewParameter(typ, name)
}

func Method(returnType Type, name string, params []*Parameter, body ...Statement) *MethodDefinition {
	return NewMethodDefinition(returnType, name, params, NewBlockStatement(body))
}

func Field(typ Type, name string) *FieldDefinition {
	return NewFieldDefinition(typ, name)
}

func ClassDef(name, extends string, fields []*FieldDefinition, methods ...*MethodDefinition) *ClassDefinition {
	return NewClassDefinition(name, extends, fields, methods)
}

func Prog(methods ...*MethodDefinition) *Program {
	return NewProgram(nil, methods)
}
