package parser

import (
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/token"
)

// stream is a read-only view of the token buffer. Its methods never modify it.
type stream []token.Token

func (ts stream) at(pos int) (token.Token, bool) {
	if pos < 0 || pos >= len(ts) {
		return token.Token{}, false
	}
	return ts[pos], true
}

func (ts stream) is(pos int, kind token.Kind) bool {
	tok, ok := ts.at(pos)
	return ok && tok.Kind == kind
}

func (ts stream) errorAt(pos int, expected string) *ParseError {
	received := EndOfInput
	if tok, ok := ts.at(pos); ok {
		received = tok.String()
	}
	return &ParseError{Expected: expected, Received: received, Position: pos}
}

// expect consumes one token of the given kind.
func (ts stream) expect(pos int, kind token.Kind) (ParseResult[token.Token], error) {
	tok, ok := ts.at(pos)
	if !ok || tok.Kind != kind {
		return ParseResult[token.Token]{Next: pos}, ts.errorAt(pos, describeKind(kind))
	}
	return ParseResult[token.Token]{Value: tok, Next: pos + 1}, nil
}

// expectAfter is expect for the token that closes an expression. If an
// expression rule stopped at pos on an operator whose operand failed, that
// failure is reported when it got further.
func (ts stream) expectAfter(pos int, kind token.Kind) (ParseResult[token.Token], error) {
	res, err := ts.expect(pos, kind)
	if err != nil {
		return res, furthest(err, ts.danglingOperand(pos))
	}
	return res, nil
}

// danglingOperand re-parses the operand of an operator left unconsumed at
// pos and returns the failure that made the expression stop there.
func (ts stream) danglingOperand(pos int) error {
	tok, ok := ts.at(pos)
	if !ok {
		return nil
	}
	if tok.Kind == token.Dot {
		_, err := ts.parseCall(pos+1, nil)
		return err
	}
	if !isBinaryOperator(tok.Kind) {
		return nil
	}
	_, err := ts.parseExpression(pos + 1)
	return err
}

func describeKind(kind token.Kind) string {
	if kind.HasPayload() {
		return kind.String()
	}
	return `"` + kind.String() + `"`
}

// many applies rule repeatedly until it fails. The failure that ended the
// repetition is returned alongside the result so callers can report it when
// the construct that follows is also missing.
func many[T any](pos int, rule func(int) (ParseResult[T], error)) (ParseResult[[]T], error) {
	var items []T
	for {
		res, err := rule(pos)
		if err != nil {
			return ParseResult[[]T]{Value: items, Next: pos}, err
		}
		items = append(items, res.Value)
		pos = res.Next
	}
}

// separated parses `rule (sep rule)*`, possibly empty.
func separated[T any](pos int, sep token.Kind, ts stream, rule func(int) (ParseResult[T], error)) (ParseResult[[]T], error) {
	first, err := rule(pos)
	if err != nil {
		return ParseResult[[]T]{Next: pos}, err
	}
	items := []T{first.Value}
	pos = first.Next
	for {
		if !ts.is(pos, sep) {
			return ParseResult[[]T]{Value: items, Next: pos}, nil
		}
		res, err := rule(pos + 1)
		if err != nil {
			return ParseResult[[]T]{Value: items, Next: pos}, err
		}
		items = append(items, res.Value)
		pos = res.Next
	}
}

// furthest picks the error that got further into the input; the required
// error wins ties.
func furthest(required, stopped error) error {
	req, ok := required.(*ParseError)
	if !ok {
		return required
	}
	stop, ok := stopped.(*ParseError)
	if !ok || stop.Position <= req.Position {
		return required
	}
	return stop
}
