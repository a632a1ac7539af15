package scanner

import "github.com/vango-dev/vglob/internal/chars"

// SplitResult is a pattern divided into a static directory prefix and the
// glob that applies below it.
type SplitResult struct {
	// Path has no glob syntax and no trailing separator. It is "/" for a
	// pattern rooted at the top and "" when there is no prefix.
	Path string `json:"path"`

	// Pattern is the remainder, starting with '!' when the input was
	// negated.
	Pattern string `json:"pattern"`
}

// Split returns the longest leading run of whole path segments that contain
// no glob syntax. Openers only count as glob syntax when their closer
// exists, matching how Compile would read them. NoBrace and NoExtGlob are
// honored; NoGlobStar has no effect on where the split falls.
func Split(pattern string, opts Options) SplitResult {
	p := []rune(pattern)

	negated := false
	if len(p) > 0 && p[0] == '!' && !opts.NoNegate && !opensExtGlob(p, 0, opts) {
		negated = true
		p = p[1:]
	}

	lastSep := -1
scan:
	for i := 0; i < len(p); i++ {
		r := p[i]
		switch {
		case r == '/':
			lastSep = i
		case r == '*' || r == '?' || r == '\\':
			break scan
		case chars.IsQuote(r):
			if findQuoteEnd(p, i+1, r) >= 0 {
				break scan
			}
		case r == '[':
			if classEnd(p, i) >= 0 {
				break scan
			}
		case r == '{' && !opts.NoBrace:
			if closer(p, i, '{', '}') >= 0 {
				break scan
			}
		case opensExtGlob(p, i, opts):
			break scan
		}
	}

	var res SplitResult
	switch {
	case lastSep < 0:
		res.Pattern = string(p)
	case lastSep == 0:
		res.Path = "/"
		res.Pattern = string(p[1:])
	default:
		res.Path = string(p[:lastSep])
		res.Pattern = string(p[lastSep+1:])
	}
	if negated {
		res.Pattern = "!" + res.Pattern
	}
	return res
}

// opensExtGlob reports whether a terminated pattern list starts at i.
func opensExtGlob(p []rune, i int, opts Options) bool {
	if opts.NoExtGlob || i+1 >= len(p) || !chars.IsExtGlobPrefix(p[i]) || p[i+1] != '(' {
		return false
	}
	return closer(p, i+1, '(', ')') >= 0
}

// closer returns the index of the close rune balancing the open rune at i,
// or -1. Escaped runes are skipped.
func closer(p []rune, i int, open, close rune) int {
	depth := 0
	for j := i; j < len(p); j++ {
		switch p[j] {
		case '\\':
			j++
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// classEnd returns the index of the ']' closing the bracket expression at
// i, or -1. A ']' right after the opener or its negation is a member.
func classEnd(p []rune, i int) int {
	j := i + 1
	if j < len(p) && (p[j] == '!' || p[j] == '^') {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	for ; j < len(p); j++ {
		switch p[j] {
		case '\\':
			j++
		case ']':
			return j
		}
	}
	return -1
}
