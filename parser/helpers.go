package parser

import (
	"fmt"

	"github.com/insomnimus/arcup/token"
)

// UnexpectedTokenError reports a token the grammar does not allow where it
// was found. Want is zero when any other token would have done.
type UnexpectedTokenError struct {
	Want token.Kind
	Got  token.Token
	Line int
}

func (e *UnexpectedTokenError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("parser: line %d: unexpected %s", e.Line, e.Got)
	}
	return fmt.Sprintf("parser: line %d: expected %s, got %s", e.Line, e.Want, e.Got)
}

func (p *Parser) peek() token.Kind {
	if p.pos >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[p.pos].Kind
}

// consume returns the current token and advances. EOF is never consumed.
func (p *Parser) consume() token.Token {
	if p.atEOF() {
		return token.New(token.EOF, "")
	}
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.peek() != k {
		var got token.Token
		if p.pos < len(p.tokens) {
			got = p.tokens[p.pos]
		} else {
			got = token.New(token.EOF, "")
		}
		return got, p.unexpected(k, got)
	}
	return p.consume(), nil
}

func (p *Parser) unexpected(want token.Kind, got token.Token) error {
	return &UnexpectedTokenError{Want: want, Got: got, Line: p.line}
}

func (p *Parser) atEOL() bool {
	return p.peek() == token.EndOfLine
}

func (p *Parser) atEOF() bool {
	return p.peek() == token.EOF
}
