// Package parser builds a Document from a token stream.
//
// Each logical line of the source becomes one entry of Document.Lines. A
// second pass wraps runs of list items in start and end indicators.
package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/insomnimus/arcup/ast"
	"github.com/insomnimus/arcup/diag"
	"github.com/insomnimus/arcup/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
	line   int
	doc    *ast.Document
	sink   *diag.Sink
}

type Option func(*Parser)

// WithSink sets where warnings go. Table cells are compiled with the same
// sink.
func WithSink(s *diag.Sink) Option {
	return func(p *Parser) {
		p.sink = s
	}
}

func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		line:   1,
		doc:    &ast.Document{},
	}
	for _, o := range opts {
		o(p)
	}
	if p.sink == nil {
		p.sink = diag.NewSink(nil)
	}
	return p
}

// Parse is a shorthand for New(tokens, opts...).Parse().
func Parse(tokens []token.Token, opts ...Option) (*ast.Document, error) {
	return New(tokens, opts...).Parse()
}

func (p *Parser) Parse() (*ast.Document, error) {
	for !p.atEOF() {
		if err := p.parseLine(); err != nil {
			return nil, err
		}
	}
	p.doc.Lines = regroup(p.doc.Lines)
	if m, ok := p.doc.Lookup(ast.MetaAllowHTML); ok && !m.Flag {
		escapeHTML(p.doc.Lines)
	}

	p.sink.Logger().Debug("parsed document",
		zap.Int("lines", len(p.doc.Lines)),
		zap.Int("meta", len(p.doc.Meta)),
	)
	return p.doc, nil
}

func (p *Parser) parseLine() error {
	var (
		line  []ast.Node
		table bool
	)
	for !p.atEOL() && !p.atEOF() {
		switch p.peek() {
		case token.Metadata:
			p.parseMeta()
		case token.OrderedList:
			line = append(line, &ast.Indicator{Kind: ast.StartOrderedList})
			n, err := p.parseRun(true)
			if err != nil {
				return err
			}
			line = append(line, n)
		case token.UnorderedList:
			line = append(line, &ast.Indicator{Kind: ast.StartUnorderedList})
			n, err := p.parseRun(true)
			if err != nil {
				return err
			}
			line = append(line, n)
		case token.Table:
			if err := p.parseTable(p.consume().Value); err != nil {
				return err
			}
			table = true
		case token.HorizontalRule:
			p.consume()
			line = append(line, &ast.Indicator{Kind: ast.HorizontalRule})
		case token.BlockMath:
			line = append(line, block(ast.BlockMath{Expr: p.consume().Value}))
		case token.CodeBlock:
			lang, body, _ := strings.Cut(p.consume().Value, token.CodeSep)
			line = append(line, block(ast.CodeBlock{Lang: lang, Body: body}))
		case token.RawHTML:
			line = append(line, block(ast.RawHTML{Source: p.consume().Value}))
		case token.RightParen:
			// nothing is open at the top level
			p.consume()
			line = append(line, ast.Text(")"))
		default:
			n, err := p.parseRun(false)
			if err != nil {
				return err
			}
			line = append(line, n)
		}
	}
	if p.atEOL() {
		p.consume()
	}
	// the table already took its own line
	if !table || len(line) > 0 {
		p.doc.AppendLine(line)
	}
	p.line++
	return nil
}

// parseRun parses style prefixes followed by content, up to the end of the
// line or an unmatched right parenthesis.
func (p *Parser) parseRun(list bool) (ast.Node, error) {
	if list {
		p.consume()
	}
	styles := p.parseStyles()
	children, err := p.parseContent()
	if err != nil {
		return nil, err
	}
	if list {
		return &ast.List{Styles: styles, Children: children}, nil
	}
	return &ast.Inline{Styles: styles, Children: children}, nil
}

func (p *Parser) parseStyles() []ast.StyledSyntax {
	var styles []ast.StyledSyntax
	for {
		switch p.peek() {
		case token.CharacterStyle:
			t := p.consume()
			s, err := ParseStyle(t.Value)
			if err != nil {
				p.warn("invalid style %%[%s]: %s", t.Value, err)
				continue
			}
			styles = append(styles, s)
		case token.Italic:
			p.consume()
			styles = append(styles, ast.Italic{})
		case token.Heading:
			styles = append(styles, ast.Heading{Level: len(p.consume().Value)})
		default:
			return styles
		}
	}
}

func (p *Parser) parseContent() ([]ast.Node, error) {
	var children []ast.Node
	for !p.atEOL() && !p.atEOF() {
		switch p.peek() {
		case token.RightParen:
			return children, nil
		case token.LeftParen:
			p.consume()
			n, err := p.parseRun(false)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightParen); err != nil {
				return nil, err
			}
			children = append(children, n)
		case token.CharacterStyle, token.Italic:
			// a style after content starts a nested run
			n, err := p.parseRun(false)
			if err != nil {
				return nil, err
			}
			children = append(children, n)
		case token.Text:
			children = append(children, ast.Text(p.consume().Value))
		case token.LiteralRightParen:
			p.consume()
			children = append(children, ast.Text(")"))
		case token.Bold:
			children = append(children, block(ast.Bold{Text: p.consume().Value}))
		case token.Definition:
			term, body, _ := strings.Cut(p.consume().Value, token.DefinitionSep)
			children = append(children, block(ast.Definition{Term: term, Body: body}))
		case token.Link:
			l := ast.Link{URL: p.consume().Value}
			if p.peek() == token.Text {
				l.Display = p.consume().Value
			}
			children = append(children, block(l))
		case token.InlineMath:
			children = append(children, block(ast.InlineMath{Expr: p.consume().Value}))
		case token.BlockMath:
			children = append(children, block(ast.BlockMath{Expr: p.consume().Value}))
		default:
			return nil, p.unexpected(0, p.consume())
		}
	}
	return children, nil
}

func block(c ast.Content) *ast.BlockedContent {
	return &ast.BlockedContent{Content: c}
}

// escapeHTML turns raw HTML blocks into plain text.
func escapeHTML(lines [][]ast.Node) {
	for _, line := range lines {
		for _, n := range line {
			if b, ok := n.(*ast.BlockedContent); ok {
				if r, ok := b.Content.(ast.RawHTML); ok {
					b.Content = ast.PlainText{Text: r.Source}
				}
			}
		}
	}
}
