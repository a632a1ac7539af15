// Package ranges converts brace ranges such as {a..e}, {01..10} and
// {-3..9..3} into regular-expression fragments.
//
// The functions here are pure and know nothing about the glob scanner. A
// fragment matches exactly the strings the range would expand to, so
// {1..20} matches "7" and "13" but not "07" or "21".
package ranges

import (
	"strconv"
	"strings"
)

// MaxEnumeration bounds how many values a stepped range may expand to.
// Larger ranges are not recognized and fall back to literal braces.
const MaxEnumeration = 1 << 16

// maxDigits keeps every bound and intermediate stop well inside int64.
const maxDigits = 15

// Kind tells alphabetic and numeric ranges apart.
type Kind int

const (
	KindAlpha Kind = iota
	KindNumeric
)

// Range is a parsed start..end[..step] brace body.
type Range struct {
	Kind  Kind
	Start string
	End   string
	Step  int
}

// Parse recognizes the body of a brace (without the braces) as a range.
func Parse(body string) (Range, bool) {
	parts := strings.Split(body, "..")
	if len(parts) != 2 && len(parts) != 3 {
		return Range{}, false
	}

	var step int64 = 1
	if len(parts) == 3 {
		n, ok := parseInt(parts[2])
		if !ok {
			return Range{}, false
		}
		step = abs(n)
		if step == 0 {
			step = 1
		}
	}

	start, end := parts[0], parts[1]
	if isLetter(start) && isLetter(end) {
		span := abs(int64(end[0]) - int64(start[0]))
		r := Range{Kind: KindAlpha, Start: start, End: end, Step: clampStep(step, span)}
		return r, true
	}

	lo, ok := parseInt(start)
	if !ok {
		return Range{}, false
	}
	hi, ok := parseInt(end)
	if !ok {
		return Range{}, false
	}
	if step > 1 && abs(hi-lo)/step >= MaxEnumeration {
		return Range{}, false
	}
	return Range{Kind: KindNumeric, Start: start, End: end, Step: clampStep(step, abs(hi-lo))}, true
}

// clampStep narrows a step that overshoots the span between the bounds.
// Any such step expands to the start alone, so span+1 is equivalent and
// always fits an int.
func clampStep(step, span int64) int {
	if step > span+1 {
		return int(max(span+1, 2))
	}
	return int(step)
}

// Regex returns the fragment for r.
func (r Range) Regex() string {
	if r.Kind == KindAlpha {
		return Alpha([]rune(r.Start)[0], []rune(r.End)[0], r.Step)
	}
	return Numeric(r.Start, r.End, r.Step)
}

func isLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parseInt(s string) (int64, bool) {
	if s == "" || s == "-" || s == "+" {
		return 0, false
	}
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || len(digits) > maxDigits {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Alpha compiles a character range. With step 1 and bounds of the same case
// it is a single bracket range; otherwise every step-th code point from start
// towards end is listed.
func Alpha(start, end rune, step int) string {
	if step < 1 {
		step = 1
	}
	if step == 1 && sameCase(start, end) {
		lo, hi := start, end
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo == hi {
			return "[" + classRune(lo) + "]"
		}
		return "[" + classRune(lo) + "-" + classRune(hi) + "]"
	}

	var b strings.Builder
	b.WriteByte('[')
	lo, hi, stride := int64(start), int64(end), int64(step)
	if lo <= hi {
		for c := lo; c <= hi; c += stride {
			b.WriteString(classRune(rune(c)))
		}
	} else {
		for c := lo; c >= hi; c -= stride {
			b.WriteString(classRune(rune(c)))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func sameCase(a, b rune) bool {
	lower := func(r rune) bool { return r >= 'a' && r <= 'z' }
	upper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	return (lower(a) && lower(b)) || (upper(a) && upper(b))
}

func classRune(r rune) string {
	switch r {
	case ']', '^', '\\':
		return `\` + string(r)
	}
	return string(r)
}
