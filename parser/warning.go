package parser

import "github.com/insomnimus/arcup/diag"

const stage = "parser"

// warn records a recoverable problem on the current line.
func (p *Parser) warn(format string, args ...interface{}) {
	p.sink.WarnAt(stage, p.line, format, args...)
}

// Warnings returns every warning recorded so far, including those of the
// lexer and of nested table cell compiles sharing the same sink.
func (p *Parser) Warnings() []*diag.Warning {
	return p.sink.Warnings()
}
