package token

import "fmt"

type Kind uint8

const (
	_ Kind = iota
	EndOfLine
	EOF
	CharacterStyle
	Metadata
	OrderedList
	UnorderedList
	Italic
	Bold
	Definition
	Heading
	LeftParen
	RightParen
	LiteralRightParen
	Text
	Link
	Table
	InlineMath
	BlockMath
	HorizontalRule
	CodeBlock
	RawHTML
)

var kindNames = [...]string{
	EndOfLine:         "EndOfLine",
	EOF:               "EOF",
	CharacterStyle:    "CharacterStyle",
	Metadata:          "Metadata",
	OrderedList:       "OrderedList",
	UnorderedList:     "UnorderedList",
	Italic:            "Italic",
	Bold:              "Bold",
	Definition:        "Definition",
	Heading:           "Heading",
	LeftParen:         "LeftParen",
	RightParen:        "RightParen",
	LiteralRightParen: "LiteralRightParen",
	Text:              "Text",
	Link:              "Link",
	Table:             "Table",
	InlineMath:        "InlineMath",
	BlockMath:         "BlockMath",
	HorizontalRule:    "HorizontalRule",
	CodeBlock:         "CodeBlock",
	RawHTML:           "RawHTML",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// DefinitionSep joins the term and body of a Definition token's value.
const DefinitionSep = "-@[]"

// CodeSep joins the language tag and body of a CodeBlock token's value.
const CodeSep = "\x00"

// Token is a lexical unit. Value is only set for kinds that carry text.
type Token struct {
	Kind  Kind
	Value string
}

func New(k Kind, value string) Token {
	return Token{Kind: k, Value: value}
}

func (t Token) GoString() string {
	return fmt.Sprintf("Token{\n"+
		"\tKind: %s,\n"+
		"\tValue: %q,\n}", t.Kind, t.Value)
}

func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("Token(%s)", t.Kind)
	}
	return fmt.Sprintf("Token(%s, %q)", t.Kind, t.Value)
}
