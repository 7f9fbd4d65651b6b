package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

var (
	ErrZeroLength = errors.New("lexer: zero length match")
	ErrTimeout    = errors.New("lexer: timeout")
)

// NoMatchError is returned when no pattern matches at Offset (in bytes).
type NoMatchError struct {
	Offset    int
	Remaining string
}

func (e *NoMatchError) Error() string {
	rest := e.Remaining
	if utf8.RuneCountInString(rest) > 40 {
		rest = string([]rune(rest)[:40]) + "..."
	}
	return fmt.Sprintf("lexer: no pattern matched at offset %d, remaining: %q", e.Offset, rest)
}

// group returns the text of group n, or "" if it did not participate.
func group(m *regexp2.Match, n int) string {
	g := m.GroupByNumber(n)
	if g == nil {
		return ""
	}
	return g.String()
}

func (l *Lexer) byteOffset() int {
	n := 0
	for _, r := range l.doc[:l.pos] {
		n += utf8.RuneLen(r)
	}
	return n
}
