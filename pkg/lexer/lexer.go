// Package lexer turns JamaScript source text into a token slice. The scanner
// is greedy and never un-consumes input.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

// LexError reports input the lexer could not recognize.
type LexError struct {
	Offset int    // byte offset of the offending input
	Char   rune   // offending character, or utf8.RuneError at end of input
	Reason string // short description
}

func (e *LexError) Error() string {
	if e.Char == utf8.RuneError {
		return fmt.Sprintf("lexer: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("lexer: %s %q at offset %d", e.Reason, e.Char, e.Offset)
}

// Tokenize scans source into tokens. Empty or whitespace-only input yields an
// empty, non-nil slice.
func Tokenize(source string) ([]token.Token, error) {
	toks, _, err := TokenizeWithOffsets(source)
	return toks, err
}

// TokenizeWithOffsets is Tokenize plus the byte offset at which each token
// starts, for callers that render source locations.
func TokenizeWithOffsets(source string) ([]token.Token, []int, error) {
	s := scanner{src: source}
	toks := make([]token.Token, 0, len(source)/3)
	offsets := make([]int, 0, cap(toks))
	for {
		s.skipWhitespace()
		if s.eof() {
			return toks, offsets, nil
		}
		start := s.pos
		tok, err := s.next()
		if err != nil {
			return nil, nil, err
		}
		toks = append(toks, tok)
		offsets = append(offsets, start)
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return r
}

// skipWhitespace skips spaces and // line comments.
func (s *scanner) skipWhitespace() {
	for !s.eof() {
		r := s.peek()
		switch {
		case unicode.IsSpace(r):
			s.advance()
		case r == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *scanner) next() (token.Token, error) {
	r := s.peek()
	switch {
	case isIdentStart(r):
		return s.readWord(), nil
	case isDigit(r):
		return s.readInteger()
	case r == '"':
		return s.readString()
	}
	if k, width, ok := s.matchSymbol(); ok {
		s.pos += width
		return token.Fixed(k), nil
	}
	return token.Token{}, newLexError(s.pos, r, "unexpected character")
}

// readWord reads an identifier or keyword and classifies it.
func (s *scanner) readWord() token.Token {
	start := s.pos
	for !s.eof() && isIdentPart(s.peek()) {
		s.advance()
	}
	word := s.src[start:s.pos]
	if k, ok := token.Lookup(word); ok {
		return token.Fixed(k)
	}
	first, _ := utf8.DecodeRuneInString(word)
	if unicode.IsUpper(first) {
		return token.NewClassName(word)
	}
	if s.nextNonSpace() == '(' {
		return token.NewMethodName(word)
	}
	return token.NewIdentifier(word)
}

// nextNonSpace looks past whitespace without consuming it.
func (s *scanner) nextNonSpace() byte {
	for i := s.pos; i < len(s.src); {
		r, size := utf8.DecodeRuneInString(s.src[i:])
		if !unicode.IsSpace(r) {
			return s.src[i]
		}
		i += size
	}
	return 0
}

func (s *scanner) readInteger() (token.Token, error) {
	start := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
	}
	value, err := strconv.ParseInt(s.src[start:s.pos], 10, 64)
	if err != nil {
		return token.Token{}, newLexError(start, utf8.RuneError, "integer literal out of range")
	}
	return token.NewInteger(value), nil
}

func (s *scanner) readString() (token.Token, error) {
	start := s.pos
	s.advance() // opening quote
	var b strings.Builder
	for {
		if s.eof() {
			return token.Token{}, newLexError(start, utf8.RuneError, "unterminated string literal")
		}
		r := s.advance()
		switch r {
		case '"':
			return token.NewString(b.String()), nil
		case '\\':
			if s.eof() {
				return token.Token{}, newLexError(start, utf8.RuneError, "unterminated string literal")
			}
			escOffset := s.pos
			switch esc := s.advance(); esc {
			case '"', '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return token.Token{}, newLexError(escOffset, esc, "unknown escape sequence")
			}
		default:
			b.WriteRune(r)
		}
	}
}

// matchSymbol recognizes punctuation and operators. Two-character operators
// are tried before their one-character prefixes.
func (s *scanner) matchSymbol() (token.Kind, int, bool) {
	c := s.src[s.pos]
	if s.peekAt(1) == '=' {
		switch c {
		case '=':
			return token.Equal, 2, true
		case '<':
			return token.LessEqual, 2, true
		case '>':
			return token.GreaterEqual, 2, true
		}
	}
	k, ok := singleSymbols[c]
	return k, 1, ok
}

var singleSymbols = map[byte]token.Kind{
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	'[': token.LeftBracket,
	']': token.RightBracket,
	',': token.Comma,
	'.': token.Dot,
	';': token.Semicolon,
	'=': token.Assign,
	'<': token.Less,
	'>': token.Greater,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'!': token.Bang,
}

func newLexError(offset int, r rune, reason string) error {
	return &LexError{Offset: offset, Char: r, Reason: reason}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return unicode.IsLetter(r) || isDigit(r) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
