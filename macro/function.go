package macro

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

type Category uint8

const (
	Full Category = iota + 1
	Inline
	MultiLine
)

func (c Category) String() string {
	switch c {
	case Full:
		return "function"
	case Inline:
		return "inline function"
	case MultiLine:
		return "multi-line function"
	default:
		return fmt.Sprintf("Category(%d)", c)
	}
}

const (
	paramPrefix = "*"
	argPrefix   = "%"
)

// Function is a text template declared in a script region.
type Function struct {
	Category Category
	Name     string
	Params   []string // with the * prefix
	Body     string
	call     *regexp2.Regexp
}

func newFunction(c Category, name, params, body string) (*Function, error) {
	if name == "" {
		return nil, fmt.Errorf("macro name cannot be empty")
	}
	f := &Function{
		Category: c,
		Name:     name,
		Body:     body,
	}
	if c == Inline {
		f.Params = []string{paramPrefix + name}
	} else {
		ps, err := parseParams(params)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", c, name, err)
		}
		f.Params = ps
	}

	// Only the name as declared calls the function, so $exp( does and exp( does not.
	pattern := `(?<![\w$])` + regexp2.Escape(name) + `[ \t]*\(([^)\n]*)\)`
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c, name, err)
	}
	re.MatchTimeout = matchTimeout
	f.call = re
	return f, nil
}

func parseParams(s string) ([]string, error) {
	var params []string
	for _, p := range strings.Fields(s) {
		if len(p) < 2 || !strings.HasPrefix(p, paramPrefix) || strings.Contains(p[1:], paramPrefix) {
			return nil, fmt.Errorf("invalid parameter %q: parameters are written as *name and separated by spaces", p)
		}
		params = append(params, p)
	}
	return params, nil
}

// splitArgs splits "%a %b" into ["a", "b"]. An argument ends where
// whitespace is followed by the % marker.
func splitArgs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, argPrefix) {
		return nil, fmt.Errorf("argument %q must be prefixed with %s", raw, argPrefix)
	}

	var args []string
	rs := []rune(raw)
	start := 1
	for i := 1; i < len(rs); i++ {
		if !unicode.IsSpace(rs[i]) {
			continue
		}
		j := i
		for j < len(rs) && unicode.IsSpace(rs[j]) {
			j++
		}
		if j < len(rs) && string(rs[j]) == argPrefix {
			args = append(args, string(rs[start:i]))
			start = j + 1
			i = j
		}
	}
	args = append(args, string(rs[start:]))
	return args, nil
}

// Invoke replaces every call site of f in content.
func (f *Function) Invoke(content string) (string, error) {
	var callErr error
	out, err := f.call.ReplaceFunc(content, func(m regexp2.Match) string {
		if callErr != nil {
			return m.String()
		}
		raw := m.GroupByNumber(1).String()
		if f.Category == Inline {
			return strings.ReplaceAll(f.Body, f.Params[0], raw)
		}
		args, err := splitArgs(raw)
		if err != nil {
			callErr = fmt.Errorf("%s %s: %w", f.Category, f.Name, err)
			return m.String()
		}
		if len(args) != len(f.Params) {
			callErr = &ArityError{Name: f.Name, Expected: len(f.Params), Got: len(args)}
			return m.String()
		}
		return f.substitute(args)
	}, -1, -1)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", f.Category, f.Name, err)
	}
	if callErr != nil {
		return "", callErr
	}
	return out, nil
}

// substitute binds every parameter to a fresh placeholder before any argument
// text is inserted, so an argument that spells another parameter's name stays
// as written.
func (f *Function) substitute(args []string) string {
	order := make([]int, len(f.Params))
	for i := range order {
		order[i] = i
	}
	// *var must not eat the front of *var1
	sort.SliceStable(order, func(a, b int) bool {
		return len(f.Params[order[a]]) > len(f.Params[order[b]])
	})

	body := f.Body
	holders := make([]string, len(f.Params))
	for _, i := range order {
		holders[i] = "\x1a" + uuid.NewString() + "\x1a"
		body = strings.ReplaceAll(body, f.Params[i], holders[i])
	}
	for i, h := range holders {
		body = strings.ReplaceAll(body, h, strings.TrimSpace(args[i]))
	}
	return body
}
