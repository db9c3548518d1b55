// Package token defines the closed set of JamaScript lexical tokens shared by
// the lexer and parser. Tokens are plain comparable values: two fixed lexemes
// of the same kind are equal, and payload tokens are equal when both kind and
// payload match. Tokens carry no source position; callers track positions as
// indexes into a token slice.
package token

import (
	"strconv"
	"strings"
)

// Kind identifies a token variant.
type Kind int

const (
	Illegal Kind = iota

	// Payload lexemes.
	Identifier
	ClassName
	MethodName
	IntegerLiteral
	StringLiteral

	keywordStart
	True
	False
	If
	Else
	While
	Return
	New
	Class
	Extends
	Println
	IntType
	StringType
	BooleanType
	VoidType
	keywordEnd

	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	Semicolon
	Assign
	Equal
	Less
	LessEqual
	Greater
	GreaterEqual
	Plus
	Minus
	Star
	Slash
	Bang
)

var kindNames = [...]string{
	Illegal:        "illegal",
	Identifier:     "identifier",
	ClassName:      "class name",
	MethodName:     "method name",
	IntegerLiteral: "integer literal",
	StringLiteral:  "string literal",

	True:        "true",
	False:       "false",
	If:          "if",
	Else:        "else",
	While:       "while",
	Return:      "return",
	New:         "new",
	Class:       "class",
	Extends:     "extends",
	Println:     "println",
	IntType:     "Int",
	StringType:  "String",
	BooleanType: "Boolean",
	VoidType:    "Void",

	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftBracket:  "[",
	RightBracket: "]",
	Comma:        ",",
	Dot:          ".",
	Semicolon:    ";",
	Assign:       "=",
	Equal:        "==",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Bang:         "!",
}

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordStart-1)
	for k := keywordStart + 1; k < keywordEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

// String returns the surface text of fixed kinds and a description of payload kinds.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > keywordStart && k < keywordEnd }

// HasPayload reports whether tokens of kind k carry a name or literal value.
func (k Kind) HasPayload() bool { return k >= Identifier && k <= StringLiteral }

// Lookup maps a word to its keyword kind.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// Token is a single lexeme. Text holds the name of identifier-like tokens and
// the unescaped contents of string literals; Int holds integer literal values.
type Token struct {
	Kind Kind
	Text string
	Int  int64
}

// Fixed returns the payload-free token of kind k.
func Fixed(k Kind) Token { return Token{Kind: k} }

// NewIdentifier returns a variable-name token.
func NewIdentifier(name string) Token { return Token{Kind: Identifier, Text: name} }

// NewClassName returns a class-name token.
func NewClassName(name string) Token { return Token{Kind: ClassName, Text: name} }

// NewMethodName returns a method-name token.
func NewMethodName(name string) Token { return Token{Kind: MethodName, Text: name} }

// NewInteger returns an integer literal token.
func NewInteger(value int64) Token { return Token{Kind: IntegerLiteral, Int: value} }

// NewString returns a string literal token holding unescaped contents.
func NewString(contents string) Token { return Token{Kind: StringLiteral, Text: contents} }

// Surface returns the canonical source text of the token. Tokenizing the
// surface text of a token yields the same token.
func (t Token) Surface() string {
	switch t.Kind {
	case Identifier, ClassName, MethodName:
		return t.Text
	case IntegerLiteral:
		return strconv.FormatInt(t.Int, 10)
	case StringLiteral:
		return Quote(t.Text)
	default:
		return t.Kind.String()
	}
}

// String describes the token for diagnostics.
func (t Token) String() string {
	if t.Kind.HasPayload() {
		return t.Kind.String() + " " + t.Surface()
	}
	return strconv.Quote(t.Kind.String())
}

// Quote renders string literal contents using the escapes the lexer accepts.
func Quote(contents string) string {
	var b strings.Builder
	b.Grow(len(contents) + 2)
	b.WriteByte('"')
	for _, r := range contents {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
