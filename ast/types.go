package ast

// Node is one of *Inline, *BlockedContent, *List, *Indicator or *Table.
type Node interface {
	HTML() string
	node()
}

// Inline is a styled span.
type Inline struct {
	Styles   []StyledSyntax
	Children []Node
}

// List is a single list item; Start/End indicators around it say which kind.
type List struct {
	Styles   []StyledSyntax
	Children []Node
}

type BlockedContent struct {
	Content Content
}

// Content is one of PlainText, Bold, Link, Definition, InlineMath, BlockMath,
// CodeBlock or RawHTML.
type Content interface {
	contentHTML() string
}

type PlainText struct {
	Text string
}

type Bold struct {
	Text string
}

type Link struct {
	URL     string
	Display string // empty means the URL is shown
}

type Definition struct {
	Term, Body string
}

type InlineMath struct {
	Expr string
}

type BlockMath struct {
	Expr string
}

type CodeBlock struct {
	Lang string
	Body string
}

type RawHTML struct {
	Source string
}

type IndicatorKind uint8

const (
	StartOrderedList IndicatorKind = iota + 1
	EndOrderedList
	StartUnorderedList
	EndUnorderedList
	HorizontalRule
)

type Indicator struct {
	Kind IndicatorKind
}

type Position struct {
	Width, Height float64
}

type Table struct {
	Position *Position
	Rows     [][]*TableCell
}

type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignCenter
	AlignLeft
	AlignRight
)

type TableCell struct {
	Content []Node
	Heading bool
	Align   Alignment
	Rowspan int
	Colspan int
}

func NewTableCell(content []Node, heading bool, align Alignment) *TableCell {
	return &TableCell{
		Content: content,
		Heading: heading,
		Align:   align,
		Rowspan: 1,
		Colspan: 1,
	}
}

func (c *TableCell) MergeCol() { c.Colspan++ }
func (c *TableCell) MergeRow() { c.Rowspan++ }

// StyledSyntax is one of Style, Heading or Italic.
type StyledSyntax interface {
	attrs() (class, style string)
}

// Style is a character style annotation; nil fields are unset.
type Style struct {
	Foreground *Color
	Size       *uint8
	Background *Color
}

type Heading struct {
	Level int
}

type Italic struct{}

func (*Inline) node()         {}
func (*List) node()           {}
func (*BlockedContent) node() {}
func (*Indicator) node()      {}
func (*Table) node()          {}

func Text(s string) *BlockedContent {
	return &BlockedContent{Content: PlainText{Text: s}}
}
