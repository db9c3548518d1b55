package parser

import (
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/ast"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

func (ts stream) parseProgram(pos int) (ParseResult[*ast.Program], error) {
	var classes []*ast.ClassDefinition
	var methods []*ast.MethodDefinition
	for {
		if ts.is(pos, token.Class) {
			class, err := ts.parseClass(pos)
			if err != nil {
				return ParseResult[*ast.Program]{Next: pos}, err
			}
			classes = append(classes, class.Value)
			pos = class.Next
			continue
		}
		method, err := ts.parseMethod(pos)
		if err != nil {
			if pos == len(ts) {
				break
			}
			return ParseResult[*ast.Program]{Next: pos}, furthest(ts.errorAt(pos, "declaration"), err)
		}
		methods = append(methods, method.Value)
		pos = method.Next
	}
	return ParseResult[*ast.Program]{Value: ast.NewProgram(classes, methods), Next: pos}, nil
}

// parseValueType parses a type usable for variables, parameters and fields.
func (ts stream) parseValueType(pos int) (ParseResult[ast.Type], error) {
	tok, ok := ts.at(pos)
	if ok {
		switch tok.Kind {
		case token.IntType:
			return ParseResult[ast.Type]{Value: ast.IntType, Next: pos + 1}, nil
		case token.StringType:
			return ParseResult[ast.Type]{Value: ast.StringType, Next: pos + 1}, nil
		case token.BooleanType:
			return ParseResult[ast.Type]{Value: ast.BoolType, Next: pos + 1}, nil
		case token.ClassName:
			return ParseResult[ast.Type]{Value: ast.ClassType{Name: tok.Text}, Next: pos + 1}, nil
		}
	}
	return ParseResult[ast.Type]{Next: pos}, ts.errorAt(pos, "type")
}

// parseReturnType is parseValueType plus Void.
func (ts stream) parseReturnType(pos int) (ParseResult[ast.Type], error) {
	if ts.is(pos, token.VoidType) {
		return ParseResult[ast.Type]{Value: ast.VoidType, Next: pos + 1}, nil
	}
	typ, err := ts.parseValueType(pos)
	if err != nil {
		return typ, ts.errorAt(pos, "return type")
	}
	return typ, nil
}

func (ts stream) parseParameter(pos int) (ParseResult[*ast.Parameter], error) {
	typ, err := ts.parseValueType(pos)
	if err != nil {
		return ParseResult[*ast.Parameter]{Next: pos}, err
	}
	name, err := ts.expect(typ.Next, token.Identifier)
	if err != nil {
		return ParseResult[*ast.Parameter]{Next: pos}, err
	}
	return ParseResult[*ast.Parameter]{Value: ast.NewParameter(typ.Value, name.Value.Text), Next: name.Next}, nil
}

// parseMethod parses `type name '(' params ')' block`.
func (ts stream) parseMethod(pos int) (ParseResult[*ast.MethodDefinition], error) {
	ret, err := ts.parseReturnType(pos)
	if err != nil {
		return ParseResult[*ast.MethodDefinition]{Next: pos}, err
	}
	name, err := ts.expect(ret.Next, token.MethodName)
	if err != nil {
		return ParseResult[*ast.MethodDefinition]{Next: pos}, err
	}
	open, err := ts.expect(name.Next, token.LeftParen)
	if err != nil {
		return ParseResult[*ast.MethodDefinition]{Next: pos}, err
	}
	params, stopErr := separated(open.Next, token.Comma, ts, ts.parseParameter)
	closing, err := ts.expect(params.Next, token.RightParen)
	if err != nil {
		return ParseResult[*ast.MethodDefinition]{Next: pos}, furthest(err, stopErr)
	}
	body, err := ts.parseBlock(closing.Next)
	if err != nil {
		return ParseResult[*ast.MethodDefinition]{Next: pos}, err
	}
	return ParseResult[*ast.MethodDefinition]{
		Value: ast.NewMethodDefinition(ret.Value, name.Value.Text, params.Value, body.Value),
		Next:  body.Next,
	}, nil
}

func (ts stream) parseField(pos int) (ParseResult[*ast.FieldDefinition], error) {
	typ, err := ts.parseValueType(pos)
	if err != nil {
		return ParseResult[*ast.FieldDefinition]{Next: pos}, err
	}
	name, err := ts.expect(typ.Next, token.Identifier)
	if err != nil {
		return ParseResult[*ast.FieldDefinition]{Next: pos}, err
	}
	semi, err := ts.expect(name.Next, token.Semicolon)
	if err != nil {
		return ParseResult[*ast.FieldDefinition]{Next: pos}, err
	}
	return ParseResult[*ast.FieldDefinition]{Value: ast.NewFieldDefinition(typ.Value, name.Value.Text), Next: semi.Next}, nil
}

// parseClass parses `class Name (extends Base)? '{' field* method* '}'`.
func (ts stream) parseClass(pos int) (ParseResult[*ast.ClassDefinition], error) {
	kw, err := ts.expect(pos, token.Class)
	if err != nil {
		return ParseResult[*ast.ClassDefinition]{Next: pos}, err
	}
	name, err := ts.expect(kw.Next, token.ClassName)
	if err != nil {
		return ParseResult[*ast.ClassDefinition]{Next: pos}, err
	}
	next := name.Next
	extends := ""
	if ts.is(next, token.Extends) {
		base, err := ts.expect(next+1, token.ClassName)
		if err != nil {
			return ParseResult[*ast.ClassDefinition]{Next: pos}, err
		}
		extends = base.Value.Text
		next = base.Next
	}
	open, err := ts.expect(next, token.LeftBrace)
	if err != nil {
		return ParseResult[*ast.ClassDefinition]{Next: pos}, err
	}
	fields, _ := many(open.Next, ts.parseField)
	methods, stopErr := many(fields.Next, ts.parseMethod)
	closing, err := ts.expect(methods.Next, token.RightBrace)
	if err != nil {
		return ParseResult[*ast.ClassDefinition]{Next: pos}, furthest(err, stopErr)
	}
	return ParseResult[*ast.ClassDefinition]{
		Value: ast.NewClassDefinition(name.Value.Text, extends, fields.Value, methods.Value),
		Next:  closing.Next,
	}, nil
}
