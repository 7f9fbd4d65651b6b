// Package macro expands the text macros declared in <script> regions.
//
// A script region may declare three kinds of function:
//
//	fn NAME(*a *b): body        one line, called as NAME(%x %y)
//	|*NAME| body                inline, called as NAME(raw text)
//	fn NAME(*a) {               multi-line, called like a one line function
//	    body
//	}
//
// and pull in other files with @include <path>, where std/NAME names a
// module of the standard library.
package macro

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/insomnimus/arcup/diag"
)

const matchTimeout = time.Second

var (
	scriptRe = mustCompile(`<script>([\s\S]*?)</script>`)
	importRe = mustCompile(`@include[ \t]*<([^>\n]+)>`)

	fullFnRe   = mustCompile(`(?m)^[ \t]*fn[ \t]+([^\s(]+)\(([^)\n]*)\):[ \t]?([^\n]*?)[ \t]*$`)
	inlineFnRe = mustCompile(`(?m)^[ \t]*\|\*([^|\s]+)\|[ \t]?([^\n]*?)[ \t]*$`)
	multiFnRe  = mustCompile(`(?m)^[ \t]*fn[ \t]+([^\s(]+)\(([^)\n]*)\)[ \t]*\{[ \t]*\n([\s\S]*?)\n[ \t]*\}[ \t]*$`)
)

type ArityError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: expected %d, got %d", e.Name, e.Expected, e.Got)
}

// SyntaxError reports script text that is not part of any declaration.
type SyntaxError struct {
	Remainder string
}

func (e *SyntaxError) Error() string {
	return "invalid macro syntax, script content not fully consumed: " + e.Remainder
}

type Processor struct {
	importer  Importer
	sink      *diag.Sink
	functions []*Function
}

type Option func(*Processor)

func WithImporter(im Importer) Option {
	return func(p *Processor) {
		p.importer = im
	}
}

// WithSink sets where import warnings go.
func WithSink(s *diag.Sink) Option {
	return func(p *Processor) {
		p.sink = s
	}
}

func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, o := range opts {
		o(p)
	}
	if p.importer == nil {
		p.importer = FileImporter{}
	}
	if p.sink == nil {
		p.sink = diag.NewSink(nil)
	}
	return p
}

// Expand is a shorthand for New(opts...).Expand(content).
func Expand(content string, opts ...Option) (string, error) {
	return New(opts...).Expand(content)
}

// Functions returns the functions declared by the last Expand call, in the
// order they were applied.
func (p *Processor) Functions() []*Function {
	return p.functions
}

// Expand removes the script regions from content and replaces every call
// site of the functions they declare. Each function is applied once, one
// line functions first, then inline, then multi-line ones.
func (p *Processor) Expand(content string) (string, error) {
	p.functions = nil
	bodies, err := scriptBodies(content)
	if err != nil {
		return "", err
	}
	if len(bodies) == 0 {
		return content, nil
	}
	for i, b := range bodies {
		if bodies[i], err = p.resolveImports(b, 0); err != nil {
			return "", err
		}
	}
	if content, err = scriptRe.Replace(content, "", -1, -1); err != nil {
		return "", err
	}

	script := strings.Join(bodies, "\n")
	for _, c := range []Category{Full, Inline, MultiLine} {
		var fns []*Function
		fns, script, err = extract(c, script)
		if err != nil {
			return "", err
		}
		p.functions = append(p.functions, fns...)
	}
	if rest := strings.TrimSpace(script); rest != "" {
		return "", &SyntaxError{Remainder: rest}
	}

	for _, f := range p.functions {
		if content, err = f.Invoke(content); err != nil {
			return "", err
		}
	}
	p.sink.Logger().Debug("expanded macros", zap.Int("functions", len(p.functions)))
	return content, nil
}

func scriptBodies(src string) ([]string, error) {
	matches, err := findAll(scriptRe, src)
	if err != nil {
		return nil, err
	}
	bodies := make([]string, len(matches))
	for i, m := range matches {
		bodies[i] = m.GroupByNumber(1).String()
	}
	return bodies, nil
}

// extract returns the declarations of category c and the script with them
// removed.
func extract(c Category, script string) ([]*Function, string, error) {
	re := map[Category]*regexp2.Regexp{
		Full:      fullFnRe,
		Inline:    inlineFnRe,
		MultiLine: multiFnRe,
	}[c]

	matches, err := findAll(re, script)
	if err != nil || len(matches) == 0 {
		return nil, script, err
	}

	fns := make([]*Function, 0, len(matches))
	for _, m := range matches {
		group := func(n int) string { return m.GroupByNumber(n).String() }
		var (
			f   *Function
			err error
		)
		switch c {
		case Inline:
			f, err = newFunction(c, group(1), "", group(2))
		case MultiLine:
			f, err = newFunction(c, group(1), group(2), dedent(group(3)))
		default:
			f, err = newFunction(c, group(1), group(2), group(3))
		}
		if err != nil {
			return nil, script, err
		}
		fns = append(fns, f)
	}

	rest, err := re.Replace(script, "", -1, -1)
	if err != nil {
		return nil, script, err
	}
	return fns, rest, nil
}

func dedent(body string) string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	return strings.Join(lines, "\n")
}

func findAll(re *regexp2.Regexp, s string) ([]*regexp2.Match, error) {
	var out []*regexp2.Match
	m, err := re.FindStringMatch(s)
	for m != nil && err == nil {
		out = append(out, m)
		m, err = re.FindNextMatch(m)
	}
	return out, err
}
