package core

import "strings"

// SplitLine splits one raw input line into word tokens. A token is a maximal
// run of non-blank characters; any amount of leading, trailing, or interior
// blank space is discarded. There is no quoting or escaping, so a line like
// `echo "a b"` produces the two tokens `"a` and `b"`.
func SplitLine(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
}
