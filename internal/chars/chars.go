// Package chars holds the static lookup tables shared by the glob scanner:
// which characters need escaping in the emitted expression, which may be
// escaped in a pattern, path separators, POSIX class names and the regex
// fragments each construct opens and closes with.
package chars

import "strings"

// Separators are the path separators accepted on every platform.
const Separators = `/\`

// Fragments emitted for path structure.
const (
	// Sep matches either platform separator.
	Sep = `[\\/]`

	// NotSep matches one character inside a path segment.
	NotSep = `[^\\/]`

	// NoDot rejects a leading dot at the current position.
	NoDot = `(?!\.)`

	// Any matches any character including newlines.
	Any = `[\s\S]`

	// SegmentEnd matches a separator or the end of the subject.
	SegmentEnd = `(?:[\\/]|$)`
)

// regexSpecial are the characters that must be backslash-escaped when
// emitted as literals.
const regexSpecial = `\^$.|?*+()[]{}`

// classSpecial are escaped inside a bracket expression.
const classSpecial = `\]^[-`

// escapable may follow a backslash in a pattern to denote that character
// literally. Anything else after a backslash is a literal backslash.
const escapable = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ "

// Quotes open a quoted literal span.
const Quotes = `"'`

// ExtGlobPrefixes introduce a pattern list when immediately followed by '('.
const ExtGlobPrefixes = `!*+?@`

// IsRegexSpecial reports whether r must be escaped in the output.
func IsRegexSpecial(r rune) bool {
	return strings.ContainsRune(regexSpecial, r)
}

// IsEscapable reports whether r may follow a backslash in a pattern.
func IsEscapable(r rune) bool {
	return strings.ContainsRune(escapable, r)
}

// IsSeparator reports whether r is a path separator.
func IsSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// IsQuote reports whether r opens a quoted span.
func IsQuote(r rune) bool {
	return r == '"' || r == '\''
}

// IsExtGlobPrefix reports whether r can prefix a pattern list.
func IsExtGlobPrefix(r rune) bool {
	return strings.ContainsRune(ExtGlobPrefixes, r)
}

// Escape returns r as a literal in the output expression.
func Escape(r rune) string {
	if IsRegexSpecial(r) {
		return `\` + string(r)
	}
	return string(r)
}

// EscapeString escapes every rune of s with Escape.
func EscapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		b.WriteString(Escape(r))
	}
	return b.String()
}

// EscapeClass returns r as a literal member of a bracket expression.
func EscapeClass(r rune) string {
	if strings.ContainsRune(classSpecial, r) {
		return `\` + string(r)
	}
	return string(r)
}

// posixClasses maps bracket-expression class names to the members they
// expand to inside a bracket expression. Besides the POSIX names it accepts
// word (letters, digits and underscore), as GNU regex and bash do.
var posixClasses = map[string]string{
	"alnum":  `a-zA-Z0-9`,
	"alpha":  `a-zA-Z`,
	"ascii":  `\x00-\x7F`,
	"blank":  ` \t`,
	"cntrl":  `\x00-\x1F\x7F`,
	"digit":  `0-9`,
	"graph":  `\x21-\x7E`,
	"lower":  `a-z`,
	"print":  `\x20-\x7E`,
	"punct":  `!-/:-@\[-` + "`" + `{-~`,
	"space":  ` \t\r\n\v\f`,
	"upper":  `A-Z`,
	"word":   `A-Za-z0-9_`,
	"xdigit": `A-Fa-f0-9`,
}

// PosixClass returns the bracket members for a POSIX class name.
func PosixClass(name string) (string, bool) {
	members, ok := posixClasses[name]
	return members, ok
}

// Group describes how an accepted construct is wrapped in the output, and
// the literal it falls back to when the construct is abandoned.
type Group struct {
	Literal string
	Open    string
	Close   string
}

// ExtGlob maps each pattern-list prefix to its wrapping. The '!' entry's
// Open/Close surround the negative lookahead body; the scanner appends the
// trailing context and the segment consumer itself.
var ExtGlob = map[rune]Group{
	'!': {Literal: `!\(`, Open: `(?:(?!(?:`, Close: `)`},
	'*': {Literal: `\*\(`, Open: `(?:`, Close: `)*`},
	'+': {Literal: `\+\(`, Open: `(?:`, Close: `)+`},
	'?': {Literal: `\?\(`, Open: `(?:`, Close: `)?`},
	'@': {Literal: `@\(`, Open: `(?:`, Close: `)`},
}

// Structural maps the structural openers to their wrapping.
var Structural = map[rune]Group{
	'{': {Literal: `\{`, Open: `(?:`, Close: `)`},
	'[': {Literal: `\[`, Open: `[`, Close: `]`},
}

// NegatedListTail consumes the segment characters a negated pattern list
// stands for once its lookahead passed.
const NegatedListTail = `)` + NotSep + `*?)`
