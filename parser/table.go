package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/insomnimus/arcup/ast"
	"github.com/insomnimus/arcup/lexer"
)

const (
	cellSep      = ";"
	mergeLeft    = "_"
	mergeUp      = "^"
	alignMark    = "="
	headingOpen  = "["
	headingClose = "]"
)

var (
	blankLines = regexp2.MustCompile(`\n{2,}`, regexp2.None)
	positionRe = regexp2.MustCompile(`^\(\s*(\d*\.?\d+)\s*,\s*(\d*\.?\d+)\s*\)$`, regexp2.None)
)

// MergeError reports a merge directive without a neighbor to extend. Row and
// Col are 1-based.
type MergeError struct {
	Row, Col  int
	Directive string
}

func (e *MergeError) Error() string {
	dir := "left"
	if e.Directive == mergeUp {
		dir = "upper"
	}
	return fmt.Sprintf("table: merge directive %q at row %d, column %d has no %s neighbor", e.Directive, e.Row, e.Col, dir)
}

// parseTable parses the body of a table block and appends the table as its
// own line.
func (p *Parser) parseTable(body string) error {
	if s, err := blankLines.Replace(body, "\n", -1, -1); err == nil {
		body = s
	}
	rows := strings.Split(body, "\n")

	tbl := &ast.Table{}
	if pos, ok := parsePosition(strings.TrimSpace(rows[0])); ok {
		tbl.Position = pos
		rows = rows[1:]
	}

	// owners[r][c] is the cell covering logical column c of row r.
	var owners [][]*ast.TableCell
	for _, raw := range rows {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		heading := len(line) >= 2 && strings.HasPrefix(line, headingOpen) && strings.HasSuffix(line, headingClose)
		if heading {
			line = line[1 : len(line)-1]
		}

		r := len(owners)
		var row, cells []*ast.TableCell
		for _, field := range strings.Split(line, cellSep) {
			content, align := cellAlign(field)
			c := len(row)
			switch strings.TrimSpace(content) {
			case mergeLeft:
				if c == 0 {
					return &MergeError{Row: r + 1, Col: c + 1, Directive: mergeLeft}
				}
				left := row[c-1]
				left.MergeCol()
				row = append(row, left)
				continue
			case mergeUp:
				if r == 0 || c >= len(owners[r-1]) {
					return &MergeError{Row: r + 1, Col: c + 1, Directive: mergeUp}
				}
				above := owners[r-1][c]
				// one increment per row even when the cell spans columns
				if c == 0 || row[c-1] != above {
					above.MergeRow()
				}
				row = append(row, above)
				continue
			}

			cell, err := p.compileCell(content, heading, align)
			if err != nil {
				return err
			}
			row = append(row, cell)
			cells = append(cells, cell)
		}
		owners = append(owners, row)
		tbl.Rows = append(tbl.Rows, cells)
	}

	p.doc.AppendLine([]ast.Node{tbl})
	return nil
}

func parsePosition(s string) (*ast.Position, bool) {
	m, err := positionRe.FindStringMatch(s)
	if err != nil || m == nil {
		return nil, false
	}
	w, err1 := strconv.ParseFloat(m.GroupByNumber(1).String(), 64)
	h, err2 := strconv.ParseFloat(m.GroupByNumber(2).String(), 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &ast.Position{Width: w, Height: h}, true
}

// cellAlign strips the alignment markers around a cell: =x= centers, =x
// aligns left and x= aligns right.
func cellAlign(field string) (string, ast.Alignment) {
	s := strings.TrimSpace(field)
	lead := strings.HasPrefix(s, alignMark)
	trail := len(s) > 1 && strings.HasSuffix(s, alignMark)
	switch {
	case lead && trail:
		return s[1 : len(s)-1], ast.AlignCenter
	case lead:
		return s[1:], ast.AlignLeft
	case trail:
		return s[:len(s)-1], ast.AlignRight
	default:
		return s, ast.AlignNone
	}
}

// compileCell runs the lexer and parser on the text of one cell.
func (p *Parser) compileCell(src string, heading bool, align ast.Alignment) (*ast.TableCell, error) {
	tokens, err := lexer.TokenizeFragment(strings.TrimSpace(src), lexer.WithSink(p.sink))
	if err != nil {
		return nil, err
	}
	doc, err := New(tokens, WithSink(p.sink)).Parse()
	if err != nil {
		return nil, err
	}

	var content []ast.Node
	if n := len(doc.Lines); n > 0 {
		content = doc.Lines[n-1]
	}
	if len(content) == 0 {
		content = []ast.Node{ast.Text("")}
	}
	return ast.NewTableCell(content, heading, align), nil
}
