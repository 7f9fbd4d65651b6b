// Package transpiler glues the lexer, the parser and the renderer together.
package transpiler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/insomnimus/arcup/ast"
	"github.com/insomnimus/arcup/diag"
	"github.com/insomnimus/arcup/lexer"
	"github.com/insomnimus/arcup/macro"
	"github.com/insomnimus/arcup/parser"
)

// DefaultTimeout bounds tokenizing and parsing one document.
const DefaultTimeout = 5 * time.Second

type Options struct {
	Logger   *zap.Logger
	Importer macro.Importer
	// LexTimeout is the wall-clock budget of the lexer scan.
	LexTimeout time.Duration
	// Timeout is the deadline for the whole compile. Zero means DefaultTimeout
	// and a negative value disables it.
	Timeout time.Duration
}

type Result struct {
	Document *ast.Document
	HTML     string
	Warnings []*diag.Warning
}

// Compile runs tokenize and parse on a worker goroutine and gives up when ctx
// is done or the deadline passes. The worker is left to finish on its own.
func Compile(ctx context.Context, src string, opts Options) (*Result, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("transpiler: compile aborted: %w", err)
	}

	sink := diag.NewSink(opts.Logger)
	type outcome struct {
		doc *ast.Document
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		doc, err := build(src, opts, sink)
		done <- outcome{doc, err}
	}()

	var o outcome
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("transpiler: compile aborted: %w", ctx.Err())
	case o = <-done:
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Result{
		Document: o.doc,
		HTML:     o.doc.HTML(),
		Warnings: sink.Warnings(),
	}, nil
}

func build(src string, opts Options, sink *diag.Sink) (*ast.Document, error) {
	lopts := []lexer.Option{lexer.WithSink(sink)}
	if opts.LexTimeout > 0 {
		lopts = append(lopts, lexer.WithTimeout(opts.LexTimeout))
	}
	if opts.Importer != nil {
		lopts = append(lopts, lexer.WithImporter(opts.Importer))
	}
	tokens, err := lexer.Tokenize(src, lopts...)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens, parser.WithSink(sink))
}

// ToHTML compiles everything read from in with the default options, writes
// the page to out and the warnings to stderr.
func ToHTML(in io.Reader, out, stderr io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	res, err := Compile(context.Background(), string(data), Options{})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(stderr, w)
	}
	_, err = io.WriteString(out, res.HTML)
	return err
}

// OutputPath picks where the page for srcPath goes: explicit if set,
// otherwise the name= tag or the source file stem with an .html extension,
// next to the source.
func OutputPath(doc *ast.Document, srcPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	base := filepath.Base(srcPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if n, ok := doc.Name(); ok {
		name = filepath.Base(n)
	}
	return filepath.Join(filepath.Dir(srcPath), name+".html")
}
