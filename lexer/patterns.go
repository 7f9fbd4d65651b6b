package lexer

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/insomnimus/arcup/token"
)

// DefaultTimeout is the wall-clock budget of one Tokenize call. It is also the
// limit for a single pattern match.
const DefaultTimeout = time.Second

type handler uint8

const (
	nonCapture handler = iota // fixed kind, no value
	capture                   // value is the first group
	skip                      // emits nothing
	definition                // term and body joined by token.DefinitionSep
	codeBlock                 // language and body joined by token.CodeSep
	text                      // value is the whole match
)

type pattern struct {
	re      *regexp2.Regexp
	handler handler
	kind    token.Kind
}

func newPattern(expr string, h handler, k token.Kind) pattern {
	re := regexp2.MustCompile(`\A`+expr, regexp2.None)
	re.MatchTimeout = DefaultTimeout
	return pattern{re: re, handler: h, kind: k}
}

// Table order is precedence: the first pattern matching at the cursor wins.
var (
	newline     = newPattern(`\n`, nonCapture, token.EndOfLine)
	tableBlock  = newPattern(`---[ \t]*table![ \t]*\n([\s\S]*?)\n---[ \t]*`, capture, token.Table)
	htmlBlock   = newPattern(`---[ \t]*html![ \t]*\n([\s\S]*?)\n---[ \t]*`, capture, token.RawHTML)
	code        = newPattern(`<code>(?::([\w+#.-]+))?[ \t]*\n([\s\S]*?)\n?</code>[ \t]*`, codeBlock, token.CodeBlock)
	blockMath   = newPattern(`<math>\s*([\s\S]*?)\s*</math>[ \t]*`, capture, token.BlockMath)
	inlineMath  = newPattern(`<math\s+((?:(?!/>)[^\n])*?)\s*/>`, capture, token.InlineMath)
	rule        = newPattern(`---[ \t]*(?=\n|\z)`, nonCapture, token.HorizontalRule)
	whitespace  = newPattern(`[^\S\n]+`, skip, 0)
	link        = newPattern(`&\[((?:https?://)?[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(?:[/?#][^\s\]]*)?)\][ \t]*`, capture, token.Link)
	define      = newPattern(`@\[([^\]\n]*)\][ \t]?'([^'\n]*)'[ \t]*`, definition, token.Definition)
	charStyle   = newPattern(`%\[([^\]\n]*)\][ \t]*`, capture, token.CharacterStyle)
	metaLong    = newPattern(`<meta ([^\n]*)/>[ \t]*`, capture, token.Metadata)
	metaShort   = newPattern(`<meta ([^\n]*)>[ \t]*`, capture, token.Metadata)
	literalRP   = newPattern(`\\\)`, nonCapture, token.LiteralRightParen)
	leftParen   = newPattern(`\\\([ \t]*`, nonCapture, token.LeftParen)
	bold        = newPattern(`\*\*([^\n]*?)\*\*[ \t]*`, capture, token.Bold)
	heading     = newPattern(`(#{1,4})[ \t]+`, capture, token.Heading)
	ordered     = newPattern(`\d+\.[ \t]+`, nonCapture, token.OrderedList)
	unordered   = newPattern(`-[ \t]+`, nonCapture, token.UnorderedList)
	italic      = newPattern(`~`, nonCapture, token.Italic)
	rightParen  = newPattern(`\)[ \t]*`, nonCapture, token.RightParen)
	plainText   = newPattern(`[^)\n](?:(?!\*\*|\\[()]|&\[|@\[|<math[\s>])[^)\n])*`, text, token.Text)
)

// fullTable is used at the start of a line, where block constructs are
// allowed.
var fullTable = []pattern{
	newline,
	tableBlock,
	htmlBlock,
	code,
	blockMath,
	inlineMath,
	rule,
	whitespace,
	link,
	define,
	charStyle,
	metaLong,
	metaShort,
	literalRP,
	leftParen,
	bold,
	heading,
	ordered,
	unordered,
	italic,
	rightParen,
	plainText,
}

var inlineTable = []pattern{
	newline,
	inlineMath,
	blockMath,
	link,
	define,
	charStyle,
	literalRP,
	leftParen,
	bold,
	italic,
	rightParen,
	plainText,
}
