package ast

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeMethodCall          NodeType = "MethodCall"
	NodeNewExpression       NodeType = "NewExpression"
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodePrintlnStatement    NodeType = "PrintlnStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeParameter           NodeType = "Parameter"
	NodeMethodDefinition    NodeType = "MethodDefinition"
	NodeFieldDefinition     NodeType = "FieldDefinition"
	NodeClassDefinition     NodeType = "ClassDefinition"
	NodeProgram             NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// Expressions

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator   `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator Operator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// MethodCall is `name(args)` when Receiver is nil and `receiver.name(args)`
// otherwise. Chained calls nest through Receiver.
type MethodCall struct {
	nodeImpl
	expressionMarker

	Receiver  Expression   `json:"receiver,omitempty"`
	Method    string       `json:"method"`
	Arguments []Expression `json:"arguments"`
}

func NewMethodCall(receiver Expression, method string, args []Expression) *MethodCall {
	return &MethodCall{nodeImpl: newNodeImpl(NodeMethodCall), Receiver: receiver, Method: method, Arguments: args}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	ClassName string       `json:"className"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(className string, args []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), ClassName: className, Arguments: args}
}

// Statements

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Type        Type       `json:"varType"`
	Name        string     `json:"name"`
	Initializer Expression `json:"initializer"`
}

func NewVariableDeclaration(typ Type, name string, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Type: typ, Name: name, Initializer: initializer}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else"`
}

func NewIfStatement(condition Expression, then, els Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type PrintlnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewPrintlnStatement(argument Expression) *PrintlnStatement {
	return &PrintlnStatement{nodeImpl: newNodeImpl(NodePrintlnStatement), Argument: argument}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// Declarations

type Parameter struct {
	nodeImpl

	Type Type   `json:"paramType"`
	Name string `json:"name"`
}

func NewParameter(typ Type, name string) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Type: typ, Name: name}
}

type MethodDefinition struct {
	nodeImpl

	ReturnType Type            `json:"returnType"`
	Name       string          `json:"name"`
	Parameters []*Parameter    `json:"parameters"`
	Body       *BlockStatement `json:"body"`
}

func NewMethodDefinition(returnType Type, name string, params []*Parameter, body *BlockStatement) *MethodDefinition {
	return &MethodDefinition{nodeImpl: newNodeImpl(NodeMethodDefinition), ReturnType: returnType, Name: name, Parameters: params, Body: body}
}

type FieldDefinition struct {
	nodeImpl

	Type Type   `json:"fieldType"`
	Name string `json:"name"`
}

func NewFieldDefinition(typ Type, name string) *FieldDefinition {
	return &FieldDefinition{nodeImpl: newNodeImpl(NodeFieldDefinition), Type: typ, Name: name}
}

// ClassDefinition is parsed and carried in the program, but no typing rules
// apply to fields or inheritance.
type ClassDefinition struct {
	nodeImpl

	Name    string              `json:"name"`
	Extends string              `json:"extends,omitempty"`
	Fields  []*FieldDefinition  `json:"fields"`
	Methods []*MethodDefinition `json:"methods"`
}

func NewClassDefinition(name, extends string, fields []*FieldDefinition, methods []*MethodDefinition) *ClassDefinition {
	return &ClassDefinition{nodeImpl: newNodeImpl(NodeClassDefinition), Name: name, Extends: extends, Fields: fields, Methods: methods}
}

type Program struct {
	nodeImpl

	Classes []*ClassDefinition  `json:"classes"`
	Methods []*MethodDefinition `json:"methods"`
}

func NewProgram(classes []*ClassDefinition, methods []*MethodDefinition) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Classes: classes, Methods: methods}
}

// AllMethods returns top-level methods followed by class methods in
// declaration order.
func (p *Program) AllMethods() []*MethodDefinition {
	if p == nil {
		return nil
	}
	out := make([]*MethodDefinition, 0, len(p.Methods))
	out = append(out, p.Methods...)
	for _, class := range p.Classes {
		if class == nil {
			continue
		}
		out = append(out, class.Methods...)
	}
	return out
}

// Merge returns a program holding the declarations of all parts in order.
// The parts are not modified.
func Merge(parts ...*Program) *Program {
	var classes []*ClassDefinition
	var methods []*MethodDefinition
	for _, part := range parts {
		if part == nil {
			continue
		}
		classes = append(classes, part.Classes...)
		methods = append(methods, part.Methods...)
	}
	return NewProgram(classes, methods)
}
