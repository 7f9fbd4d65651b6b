package ast

import (
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"
)

const mathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// Document is the result of parsing: metadata plus one entry per logical line.
// An empty line renders as a paragraph break.
type Document struct {
	Meta  []MetaProperty
	Lines [][]Node
}

func (d *Document) AppendMeta(m MetaProperty) {
	d.Meta = append(d.Meta, m)
}

func (d *Document) AppendLine(line []Node) {
	d.Lines = append(d.Lines, line)
}

// Lookup returns the last property set for k.
func (d *Document) Lookup(k MetaKey) (MetaProperty, bool) {
	for i := len(d.Meta) - 1; i >= 0; i-- {
		if d.Meta[i].Key == k {
			return d.Meta[i], true
		}
	}
	return MetaProperty{}, false
}

// Name returns the value of the name= metadata tag.
func (d *Document) Name() (string, bool) {
	m, ok := d.Lookup(MetaName)
	if !ok || m.Text == "" {
		return "", false
	}
	return m.Text, true
}

const lineBreak = "<br />"

var (
	leadingBreaks = regexp2.MustCompile(`<body>(?:<br />)+`, regexp2.None)
	blockBreaks   = regexp2.MustCompile(
		`(?:<br />)?(</?(?:ol|ul|li|table|pre|div)\b[^>]*>|<hr />)(?:<br />)?`, regexp2.None)
	emptyAttrs = strings.NewReplacer(` class=""`, "", ` style=""`, "")
)

func (d *Document) HTML() string {
	var head strings.Builder
	for _, m := range d.Meta {
		head.WriteString(m.HTML())
	}

	lines := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		lines[i] = renderChildren(line)
	}

	var out strings.Builder
	out.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	out.WriteString(head.String())
	out.WriteString(`<meta charset="UTF-8">`)
	out.WriteString(`<script src="` + mathJaxURL + `"></script>`)
	out.WriteString("<style>" + baseStyle + "</style>")
	out.WriteString("</head><body>")
	out.WriteString(strings.Join(lines, lineBreak))
	out.WriteString("</body></html>")

	return cleanup(out.String())
}

func cleanup(src string) string {
	src = emptyAttrs.Replace(src)
	if s, err := leadingBreaks.Replace(src, "<body>", -1, -1); err == nil {
		src = s
	}
	if s, err := blockBreaks.Replace(src, "$1", -1, -1); err == nil {
		src = s
	}
	return spacesToNbsp(src)
}

// verbatim elements keep their spaces.
var verbatim = map[string]bool{
	"pre":    true,
	"code":   true,
	"style":  true,
	"script": true,
}

// spacesToNbsp rewrites spaces in body text as &nbsp;. Tags, attribute values,
// style/script/pre content and math spans are copied unchanged.
func spacesToNbsp(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var out strings.Builder
	out.Grow(len(src) + len(src)/8)

	var (
		inBody   bool
		skipTag  string
		skipOpen int
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return out.String()
		}
		raw := z.Raw()
		if tt == html.TextToken {
			if inBody && skipOpen == 0 {
				out.WriteString(strings.ReplaceAll(string(raw), " ", "&nbsp;"))
			} else {
				out.Write(raw)
			}
			continue
		}
		out.Write(raw)

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "body" {
				inBody = true
			}
			switch {
			case skipOpen > 0 && tag == skipTag:
				skipOpen++
			case skipOpen == 0 && (verbatim[tag] || (hasAttr && isMath(z))):
				skipTag, skipOpen = tag, 1
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skipOpen > 0 && string(name) == skipTag {
				skipOpen--
			}
		}
	}
}

func isMath(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == "math" {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}
