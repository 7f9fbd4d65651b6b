package macro

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	// A comment line disappears together with the newline before it. A trailing
	// comment needs whitespace in front so "https://" survives.
	commentRe      = mustCompile(`\A(?:[ \t]*//[^\n]*\n)*[ \t]*//[^\n]*\n?|\n[ \t]*//[^\n]*|(?<=[ \t])//[^\n]*`)
	continuationRe = mustCompile(`\\[ \t]*\n`)
	lineEndings    = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

// StripComments removes // comments.
func StripComments(src string) string {
	out, err := commentRe.Replace(src, "", -1, -1)
	if err != nil {
		return src
	}
	return out
}

// Normalize converts line endings to \n, joins lines ending in a backslash and
// strips comments.
func Normalize(src string) string {
	src = lineEndings.Replace(src)
	if out, err := continuationRe.Replace(src, "", -1, -1); err == nil {
		src = out
	}
	return StripComments(src)
}
