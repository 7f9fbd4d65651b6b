// Package lexer turns a source document into tokens.
//
// Tokenize first normalizes the text and expands macros, then scans it with
// two ordered pattern tables: the full table at the start of a line and the
// inline table everywhere else.
package lexer

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/insomnimus/arcup/diag"
	"github.com/insomnimus/arcup/macro"
	"github.com/insomnimus/arcup/token"
)

type Lexer struct {
	doc         []rune
	pos         int
	atLineStart bool
	tokens      []token.Token

	fragment bool
	timeout  time.Duration
	importer macro.Importer
	sink     *diag.Sink
}

type Option func(*Lexer)

// WithTimeout sets the wall-clock budget of Tokenize.
func WithTimeout(d time.Duration) Option {
	return func(l *Lexer) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithImporter sets how @include paths in script regions are read.
func WithImporter(im macro.Importer) Option {
	return func(l *Lexer) {
		l.importer = im
	}
}

func WithSink(s *diag.Sink) Option {
	return func(l *Lexer) {
		l.sink = s
	}
}

func New(s string, opts ...Option) *Lexer {
	l := &Lexer{
		timeout:     DefaultTimeout,
		atLineStart: true,
	}
	for _, o := range opts {
		o(l)
	}
	if l.sink == nil {
		l.sink = diag.NewSink(nil)
	}
	l.doc = []rune(s)
	return l
}

// Tokenize is a shorthand for New(src, opts...).Tokenize().
func Tokenize(src string, opts ...Option) ([]token.Token, error) {
	return New(src, opts...).Tokenize()
}

// TokenizeFragment tokenizes text that was already preprocessed, such as a
// table cell, using only the inline patterns.
func TokenizeFragment(src string, opts ...Option) ([]token.Token, error) {
	l := New(src, opts...)
	l.fragment = true
	return l.scan()
}

// Tokenize preprocesses the document and scans it. The returned slice always
// ends with an EOF token.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	if err := l.preprocess(); err != nil {
		return nil, err
	}
	return l.scan()
}

func (l *Lexer) preprocess() error {
	src := macro.Normalize(string(l.doc))
	opts := []macro.Option{macro.WithSink(l.sink)}
	if l.importer != nil {
		opts = append(opts, macro.WithImporter(l.importer))
	}
	proc := macro.New(opts...)
	src, err := proc.Expand(src)
	if err != nil {
		return err
	}
	if fns := proc.Functions(); len(fns) > 0 {
		names := make([]string, len(fns))
		for i, f := range fns {
			names[i] = f.Name
		}
		l.sink.Logger().Debug("applied macros", zap.Strings("names", names))
	}
	l.doc = []rune(src)
	return nil
}

func (l *Lexer) scan() ([]token.Token, error) {
	start := time.Now()
	deadline := start.Add(l.timeout)

	for l.pos < len(l.doc) {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %s at offset %d", ErrTimeout, l.timeout, l.byteOffset())
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.push(token.New(token.EOF, ""))

	l.sink.Logger().Debug("tokenized document",
		zap.Int("tokens", len(l.tokens)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return l.tokens, nil
}

func (l *Lexer) table() []pattern {
	if l.atLineStart && !l.fragment {
		return fullTable
	}
	return inlineTable
}

// next applies the first pattern that matches at the cursor.
func (l *Lexer) next() error {
	rest := l.doc[l.pos:]
	for _, p := range l.table() {
		m, err := p.re.FindRunesMatch(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if m == nil || m.Index != 0 {
			continue
		}
		if m.Length == 0 {
			return fmt.Errorf("%w at offset %d", ErrZeroLength, l.byteOffset())
		}
		l.apply(p, m)
		return nil
	}
	return &NoMatchError{
		Offset:    l.byteOffset(),
		Remaining: string(rest),
	}
}

func (l *Lexer) apply(p pattern, m *regexp2.Match) {
	switch p.handler {
	case nonCapture:
		l.push(token.New(p.kind, ""))
	case capture:
		l.push(token.New(p.kind, group(m, 1)))
	case definition:
		l.push(token.New(p.kind, group(m, 1)+token.DefinitionSep+group(m, 2)))
	case codeBlock:
		l.push(token.New(p.kind, group(m, 1)+token.CodeSep+group(m, 2)))
	case text:
		l.push(token.New(p.kind, m.String()))
	case skip:
	}
	l.pos += m.Length
}

func (l *Lexer) push(t token.Token) {
	l.tokens = append(l.tokens, t)
	l.atLineStart = t.Kind == token.EndOfLine
}
