package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/insomnimus/arcup/ast"
	"github.com/insomnimus/arcup/diag"
	"github.com/insomnimus/arcup/lexer"
	"github.com/insomnimus/arcup/token"
)

func compile(t *testing.T, src string) (*ast.Document, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(nil)
	tokens, err := lexer.Tokenize(src, lexer.WithSink(sink))
	if err != nil {
		t.Fatalf("%q: Tokenize returned error: %s", src, err)
	}
	doc, err := Parse(tokens, WithSink(sink))
	if err != nil {
		t.Fatalf("%q: Parse returned error: %s", src, err)
	}
	return doc, sink
}

func compileErr(src string) error {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return err
	}
	_, err = Parse(tokens)
	return err
}

func inline(styles []ast.StyledSyntax, children ...ast.Node) *ast.Inline {
	return &ast.Inline{Styles: styles, Children: children}
}

func item(children ...ast.Node) *ast.List {
	return &ast.List{Children: children}
}

func indicator(k ast.IndicatorKind) []ast.Node {
	return []ast.Node{&ast.Indicator{Kind: k}}
}

func render(lines [][]ast.Node) string {
	var out []string
	for _, l := range lines {
		var b strings.Builder
		for _, n := range l {
			b.WriteString(n.HTML())
		}
		out = append(out, "["+b.String()+"]")
	}
	return strings.Join(out, "\n")
}

func TestParse(t *testing.T) {
	red := ast.Color{R: 255}
	tests := []struct {
		src  string
		want [][]ast.Node
	}{
		{"Hello World", [][]ast.Node{
			{inline(nil, ast.Text("Hello World"))},
		}},
		{"# Heading", [][]ast.Node{
			{inline([]ast.StyledSyntax{ast.Heading{Level: 1}}, ast.Text("Heading"))},
		}},
		{"%[red] hi", [][]ast.Node{
			{inline([]ast.StyledSyntax{ast.Style{Foreground: &red}}, ast.Text("hi"))},
		}},
		{"~### x", [][]ast.Node{
			{inline([]ast.StyledSyntax{ast.Italic{}}, ast.Text("### x"))},
		}},
		{"a\n\nb\n", [][]ast.Node{
			{inline(nil, ast.Text("a"))},
			{},
			{inline(nil, ast.Text("b"))},
		}},
		{"1. a\n2. b", [][]ast.Node{
			indicator(ast.StartOrderedList),
			{item(ast.Text("a"))},
			{item(ast.Text("b"))},
			indicator(ast.EndOrderedList),
		}},
		{"- a\n\n- b\n\nafter", [][]ast.Node{
			indicator(ast.StartUnorderedList),
			{item(ast.Text("a"))},
			{},
			{item(ast.Text("b"))},
			indicator(ast.EndUnorderedList),
			{},
			{inline(nil, ast.Text("after"))},
		}},
		{"1. a\n- b", [][]ast.Node{
			indicator(ast.StartOrderedList),
			{item(ast.Text("a"))},
			indicator(ast.EndOrderedList),
			indicator(ast.StartUnorderedList),
			{item(ast.Text("b"))},
			indicator(ast.EndUnorderedList),
		}},
		{`text \( inner ) after`, [][]ast.Node{
			{inline(nil, ast.Text("text "), inline(nil, ast.Text("inner ")), ast.Text("after"))},
		}},
		{`a \( \( deep ) ) b`, [][]ast.Node{
			{inline(nil, ast.Text("a "), inline(nil, inline(nil, ast.Text("deep "))), ast.Text("b"))},
		}},
		{"**b** %[red]x", [][]ast.Node{
			{inline(nil, block(ast.Bold{Text: "b"}), inline([]ast.StyledSyntax{ast.Style{Foreground: &red}}, ast.Text("x")))},
		}},
		{"a ) b", [][]ast.Node{
			{inline(nil, ast.Text("a ")), ast.Text(")"), inline(nil, ast.Text("b"))},
		}},
		{`paren \) here`, [][]ast.Node{
			{inline(nil, ast.Text("paren "), ast.Text(")"), ast.Text(" here"))},
		}},
		{"&[example.com] click here", [][]ast.Node{
			{inline(nil, block(ast.Link{URL: "example.com", Display: "click here"}))},
		}},
		{"@[term] 'body'", [][]ast.Node{
			{inline(nil, block(ast.Definition{Term: "term", Body: "body"}))},
		}},
		{"a\n---\n<math>\nx\n</math>", [][]ast.Node{
			{inline(nil, ast.Text("a"))},
			indicator(ast.HorizontalRule),
			{block(ast.BlockMath{Expr: "x"})},
		}},
		{"<code>:go\nx := 1\n</code>", [][]ast.Node{
			{block(ast.CodeBlock{Lang: "go", Body: "x := 1"})},
		}},
		{"<meta title=Doc>\nx", [][]ast.Node{
			{},
			{inline(nil, ast.Text("x"))},
		}},
	}

	for _, test := range tests {
		doc, _ := compile(t, test.src)
		got := doc.Lines
		if len(got) == 0 {
			got = nil
		}
		want := test.want
		for i := range want {
			if len(want[i]) == 0 {
				want[i] = nil
			}
		}
		for i := range got {
			if len(got[i]) == 0 {
				got[i] = nil
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%q: lines mismatch:\ngot:\n%s\nexpected:\n%s", test.src, render(got), render(want))
		}
	}
}

func TestListLines(t *testing.T) {
	for n := 1; n <= 5; n++ {
		var src []string
		for i := 0; i < n; i++ {
			src = append(src, "1. item")
		}
		doc, _ := compile(t, strings.Join(src, "\n"))
		if len(doc.Lines) != n+2 {
			t.Errorf("%d list lines: got %d document lines, expected %d", n, len(doc.Lines), n+2)
		}
	}
}

func TestParseMetaAndWarnings(t *testing.T) {
	doc, sink := compile(t, "<meta title=Doc/>\n<meta bogus=1>\n<meta h1-color=nocolor>\n%[notacolor] hi\nname")
	if m, ok := doc.Lookup(ast.MetaTitle); !ok || m.Text != "Doc" {
		t.Errorf("title not recorded: %+v", doc.Meta)
	}
	if len(doc.Meta) != 1 {
		t.Errorf("expected 1 metadata property, got %d", len(doc.Meta))
	}
	ws := sink.Warnings()
	if len(ws) != 3 {
		t.Fatalf("expected 3 warnings, got %v", ws)
	}
	if ws[0].Line != 2 || ws[2].Line != 4 {
		t.Errorf("unexpected warning lines: %v", ws)
	}
	if len(doc.Lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(doc.Lines))
	}
	// the bad style is dropped, the text stays
	want := inline(nil, ast.Text("hi"))
	if !reflect.DeepEqual(doc.Lines[3], []ast.Node{want}) {
		t.Errorf("unexpected line: %s", render(doc.Lines[3:4]))
	}
}

func TestParseErrors(t *testing.T) {
	err := compileErr(`a \( b`)
	var ue *UnexpectedTokenError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnexpectedTokenError, got %v", err)
	}
	if ue.Want != token.RightParen || ue.Got.Kind != token.EOF {
		t.Errorf("unexpected error: %s", ue)
	}

	// tokens the grammar does not place inside a run
	_, err = Parse([]token.Token{
		token.New(token.Text, "x"),
		token.New(token.Heading, "#"),
		token.New(token.EOF, ""),
	})
	if !errors.As(err, &ue) {
		t.Errorf("expected UnexpectedTokenError, got %v", err)
	}
}

func TestTable(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{
			"--- table!\n[%[red]Heading 1;Heading 2;Heading 3]\nCell 1;Cell 2;Cell 3\nCell 4;Cell 5;Cell 6\n---",
			[]string{`<th><span style="color: rgb(255, 0, 0);"><span>Heading&nbsp;1</span></span></th>`},
		},
		{
			"--- table!\n[Heading 1;Heading 2;Heading 3]\nCell 1;_;Cell 3\nCell 4;Cell 5;Cell 6\n---",
			[]string{`colspan="2"`},
		},
		{
			"--- table!\n[Heading 1;Heading 2;Heading 3]\nCell 1;Cell 2;Cell 3\n^;^;Cell 6\n---",
			[]string{`rowspan="2"`},
		},
		{
			"--- table!\n[Heading 1;Heading 2;Heading 3]\nCell 1; _ ; _\n---",
			[]string{`colspan="3"`},
		},
		{
			"--- table!\n(12.5, 22.4)\n[Heading 1;Heading 2;Heading 3]\nCell 1;Cell 2;Cell 3\n---",
			[]string{`width: 125px; height: 224px;`},
		},
		{
			"--- table!\n=a=;=b;c=;;\n---",
			[]string{
				`<td style="text-align: center;"><span><span>a</span></span></td>`,
				`<td style="text-align: left;"><span><span>b</span></span></td>`,
				`<td style="text-align: right;"><span><span>c</span></span></td>`,
				`<td><span></span></td>`,
			},
		},
	}

	for _, test := range tests {
		doc, _ := compile(t, test.src)
		if len(doc.Lines) != 1 {
			t.Errorf("%q: expected the table on a single line, got %d lines", test.src, len(doc.Lines))
		}
		out := doc.HTML()
		for _, w := range test.want {
			if !strings.Contains(out, w) {
				t.Errorf("%q: output is missing %s:\n%s", test.src, w, out)
			}
		}
	}
}

func TestTableSpans(t *testing.T) {
	doc, _ := compile(t, "--- table!\na;_;b\n^;^;c\n^;^;d\n---\nafter")
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(doc.Lines))
	}
	tbl, ok := doc.Lines[0][0].(*ast.Table)
	if !ok {
		t.Fatalf("first line is not a table: %T", doc.Lines[0][0])
	}
	a := tbl.Rows[0][0]
	if a.Colspan != 2 || a.Rowspan != 3 {
		t.Errorf("a: colspan=%d rowspan=%d, expected 2 and 3", a.Colspan, a.Rowspan)
	}
	if len(tbl.Rows[1]) != 1 || len(tbl.Rows[2]) != 1 {
		t.Errorf("merged rows should only hold their own cells: %d, %d", len(tbl.Rows[1]), len(tbl.Rows[2]))
	}
}

func TestTableMergeErrors(t *testing.T) {
	tests := []struct {
		src       string
		directive string
	}{
		{"--- table!\n[Heading 1;Heading 2;Heading 3]\n_;Cell 2;Cell 3\n---", "_"},
		{"--- table!\n[^;Heading 2;Heading 3]\nCell 1;Cell 2;Cell 3\n---", "^"},
		{"--- table!\na\nb;^\n---", "^"},
	}
	for _, test := range tests {
		err := compileErr(test.src)
		var me *MergeError
		if !errors.As(err, &me) {
			t.Errorf("%q: expected MergeError, got %v", test.src, err)
			continue
		}
		if me.Directive != test.directive {
			t.Errorf("%q: directive = %q, expected %q", test.src, me.Directive, test.directive)
		}
	}
}

func TestAllowHTML(t *testing.T) {
	src := "---html!\n<b>x</b>\n---"
	doc, _ := compile(t, src)
	if out := doc.HTML(); !strings.Contains(out, "<b>x</b>") {
		t.Errorf("raw HTML was not kept:\n%s", out)
	}

	doc, _ = compile(t, "<meta allow-html=false>\n"+src)
	out := doc.HTML()
	if strings.Contains(out, "<b>x</b>") || !strings.Contains(out, "&lt;b&gt;x&lt;/b&gt;") {
		t.Errorf("raw HTML was not escaped:\n%s", out)
	}
}

func TestParseMeta(t *testing.T) {
	tests := []struct {
		in   string
		want ast.MetaProperty
		err  bool
	}{
		{in: `title = "My Doc"`, want: ast.MetaProperty{Key: ast.MetaTitle, Text: "My Doc"}},
		{in: "name=My Document key=value ", want: ast.MetaProperty{Key: ast.MetaName, Text: "My Document key=value"}},
		{in: "h1-font-size=24", want: ast.MetaProperty{Key: ast.MetaH1FontSize, Size: 24}},
		{in: "background-color=(1, 2, 3)", want: ast.MetaProperty{Key: ast.MetaBackgroundColor, Color: ast.Color{R: 1, G: 2, B: 3}}},
		{in: "allow-html=TRUE", want: ast.MetaProperty{Key: ast.MetaAllowHTML, Flag: true}},
		{in: "h1-font-size=300", err: true},
		{in: "font-color=(256, 0, 0)", err: true},
		{in: "allow-html=maybe", err: true},
		{in: "nope=1", err: true},
		{in: "title=", err: true},
		{in: "novalue", err: true},
	}
	for _, test := range tests {
		got, err := ParseMeta(test.in)
		if test.err {
			if err == nil {
				t.Errorf("ParseMeta(%q): expected an error", test.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMeta(%q) returned error: %s", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseMeta(%q) = %+v, expected %+v", test.in, got, test.want)
		}
	}
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("::blue")
	if err != nil {
		t.Fatal(err)
	}
	if s.Foreground != nil || s.Size != nil || s.Background == nil || *s.Background != (ast.Color{B: 255}) {
		t.Errorf("::blue parsed as %+v", s)
	}

	s, err = ParseStyle("red:12")
	if err != nil {
		t.Fatal(err)
	}
	if s.Foreground == nil || s.Size == nil || *s.Size != 12 || s.Background != nil {
		t.Errorf("red:12 parsed as %+v", s)
	}

	for _, bad := range []string{"", "::", "red:abc", "a:b:c:d", "notacolor", "red:12:(1, 2)"} {
		if _, err := ParseStyle(bad); err == nil {
			t.Errorf("ParseStyle(%q): expected an error", bad)
		}
	}
}
