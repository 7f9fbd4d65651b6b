package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/insomnimus/arcup/ast"
)

// ParseMeta parses the payload of a metadata tag. The payload holds one
// key=value pair; everything after the first '=' is the value.
func ParseMeta(payload string) (ast.MetaProperty, error) {
	key, value, ok := strings.Cut(payload, "=")
	if !ok {
		return ast.MetaProperty{}, fmt.Errorf("invalid metadata tag %q: expected key=value", strings.TrimSpace(payload))
	}
	key = strings.TrimSpace(key)
	value = unquote(strings.TrimSpace(value))
	if value == "" {
		return ast.MetaProperty{}, fmt.Errorf("metadata %q has an empty value", key)
	}

	k, ok := ast.LookupMetaKey(key)
	if !ok {
		return ast.MetaProperty{}, fmt.Errorf("unknown metadata key %q", key)
	}

	m := ast.MetaProperty{Key: k}
	switch k.Value() {
	case ast.MetaText:
		m.Text = value
	case ast.MetaSize:
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return ast.MetaProperty{}, fmt.Errorf("invalid size for %s: %q", k, value)
		}
		m.Size = uint8(n)
	case ast.MetaColor:
		c, err := ast.ParseColor(value)
		if err != nil {
			return ast.MetaProperty{}, fmt.Errorf("invalid color for %s: %w", k, err)
		}
		m.Color = c
	case ast.MetaBool:
		b, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return ast.MetaProperty{}, fmt.Errorf("invalid boolean for %s: %q", k, value)
		}
		m.Flag = b
	}
	return m, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}

func (p *Parser) parseMeta() {
	t := p.consume()
	m, err := ParseMeta(t.Value)
	if err != nil {
		p.warn("%s", err)
		return
	}
	p.doc.AppendMeta(m)
}

// ParseStyle parses a character style annotation: color[:size[:background]].
// Empty fields are left unset.
func ParseStyle(s string) (ast.Style, error) {
	if strings.TrimSpace(strings.ReplaceAll(s, ":", "")) == "" {
		return ast.Style{}, fmt.Errorf("empty style annotation %q", s)
	}
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return ast.Style{}, fmt.Errorf("invalid style annotation %q: too many fields", s)
	}

	var (
		style ast.Style
		err   error
	)
	if style.Foreground, err = optionalColor(fields[0]); err != nil {
		return ast.Style{}, err
	}
	if len(fields) > 1 {
		if f := strings.TrimSpace(fields[1]); f != "" {
			n, err := strconv.ParseUint(f, 10, 8)
			if err != nil {
				return ast.Style{}, fmt.Errorf("invalid font size %q", f)
			}
			size := uint8(n)
			style.Size = &size
		}
	}
	if len(fields) > 2 {
		if style.Background, err = optionalColor(fields[2]); err != nil {
			return ast.Style{}, err
		}
	}
	return style, nil
}

func optionalColor(s string) (*ast.Color, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := ast.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
