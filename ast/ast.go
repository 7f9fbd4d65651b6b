package ast

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

var escape = html.EscapeString

func renderChildren(nodes []Node) string {
	var out strings.Builder
	for _, n := range nodes {
		out.WriteString(n.HTML())
	}
	return out.String()
}

func styleAttrs(styles []StyledSyntax) (class, style string) {
	var classes []string
	var rules strings.Builder
	for _, s := range styles {
		c, r := s.attrs()
		if c != "" {
			classes = append(classes, c)
		}
		rules.WriteString(r)
	}
	return strings.Join(classes, " "), rules.String()
}

// Inline

func (n *Inline) HTML() string {
	class, style := styleAttrs(n.Styles)
	return fmt.Sprintf(`<span class="%s" style="%s">%s</span>`,
		escape(class), escape(style), renderChildren(n.Children))
}

// List

func (n *List) HTML() string {
	class, style := styleAttrs(n.Styles)
	return fmt.Sprintf(`<li class="%s" style="%s">%s</li>`,
		escape(class), escape(style), renderChildren(n.Children))
}

// BlockedContent

func (n *BlockedContent) HTML() string {
	if n.Content == nil {
		return ""
	}
	return n.Content.contentHTML()
}

func (t PlainText) contentHTML() string {
	return "<span>" + escape(t.Text) + "</span>"
}

func (b Bold) contentHTML() string {
	return "<strong>" + escape(b.Text) + "</strong>"
}

func (l Link) contentHTML() string {
	display := l.Display
	if display == "" {
		display = l.URL
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, escape(l.Href()), escape(display))
}

// Href is the link target; scheme-less URLs are taken to be https.
func (l Link) Href() string {
	if strings.Contains(l.URL, "://") {
		return l.URL
	}
	return "https://" + l.URL
}

func (d Definition) contentHTML() string {
	return fmt.Sprintf(`<span><span style="color: red;text-decoration: underline;">%s</span>: <span>%s</span></span>`,
		escape(d.Term), escape(d.Body))
}

func (m InlineMath) contentHTML() string {
	return `<span class="math">\(` + escape(m.Expr) + `\)</span>`
}

func (m BlockMath) contentHTML() string {
	return `<div class="math">\[` + escape(m.Expr) + `\]</div>`
}

func (c CodeBlock) contentHTML() string {
	class := ""
	if c.Lang != "" {
		class = "language-" + c.Lang
	}
	return fmt.Sprintf(`<pre><code class="%s">%s</code></pre>`, escape(class), escape(c.Body))
}

func (r RawHTML) contentHTML() string {
	return r.Source
}

// Indicator

func (n *Indicator) HTML() string {
	switch n.Kind {
	case StartOrderedList:
		return "<ol>"
	case EndOrderedList:
		return "</ol>"
	case StartUnorderedList:
		return "<ul>"
	case EndUnorderedList:
		return "</ul>"
	case HorizontalRule:
		return "<hr />"
	default:
		return ""
	}
}

// Table

func (t *Table) HTML() string {
	var out strings.Builder
	style := ""
	if t.Position != nil {
		style = fmt.Sprintf("width: %spx; height: %spx;",
			formatFloat(t.Position.Width*10), formatFloat(t.Position.Height*10))
	}
	fmt.Fprintf(&out, `<table style="%s"><tbody>`, style)
	for _, row := range t.Rows {
		out.WriteString("<tr>")
		for _, c := range row {
			out.WriteString(c.HTML())
		}
		out.WriteString("</tr>")
	}
	out.WriteString("</tbody></table>")
	return out.String()
}

func (c *TableCell) HTML() string {
	tag := "td"
	if c.Heading {
		tag = "th"
	}
	var attrs strings.Builder
	if c.Colspan > 1 {
		fmt.Fprintf(&attrs, ` colspan="%d"`, c.Colspan)
	}
	if c.Rowspan > 1 {
		fmt.Fprintf(&attrs, ` rowspan="%d"`, c.Rowspan)
	}
	return fmt.Sprintf(`<%s%s style="%s">%s</%s>`,
		tag, attrs.String(), c.Align.css(), renderChildren(c.Content), tag)
}

func (a Alignment) css() string {
	switch a {
	case AlignCenter:
		return "text-align: center;"
	case AlignLeft:
		return "text-align: left;"
	case AlignRight:
		return "text-align: right;"
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// StyledSyntax

func (s Style) attrs() (string, string) {
	var out strings.Builder
	if s.Foreground != nil {
		fmt.Fprintf(&out, "color: %s;", s.Foreground)
	}
	if s.Size != nil {
		fmt.Fprintf(&out, "font-size: %dpx;", *s.Size)
	}
	if s.Background != nil {
		fmt.Fprintf(&out, "background-color: %s;", s.Background)
	}
	return "", out.String()
}

func (h Heading) attrs() (string, string) {
	return fmt.Sprintf("h%dsize", h.Level), ""
}

func (Italic) attrs() (string, string) {
	return "", "font-style: italic;"
}
