package ranges

import (
	"sort"
	"strconv"
	"strings"
)

// Numeric compiles a decimal range. start and end keep their sign and any
// leading zeros; a leading zero on either bound fixes the digit width of
// every value, as brace expansion pads {01..10} to 01, 02, ... 10.
func Numeric(start, end string, step int) string {
	lo, _ := strconv.ParseInt(start, 10, 64)
	hi, _ := strconv.ParseInt(end, 10, 64)
	width := padWidth(start, end)
	if step <= 1 {
		return contiguous(lo, hi, width)
	}
	return stepped(lo, hi, step, width)
}

// padWidth returns the digit width implied by the bound with more leading
// zeros, or 0 when neither bound is zero padded.
func padWidth(start, end string) int {
	a, b := strings.TrimPrefix(start, "-"), strings.TrimPrefix(end, "-")
	za, zb := leadingZeros(a), leadingZeros(b)
	switch {
	case za == 0 && zb == 0:
		return 0
	case za > zb:
		return len(a)
	case zb > za:
		return len(b)
	default:
		return max(len(a), len(b))
	}
}

func leadingZeros(digits string) int {
	n := 0
	for n < len(digits)-1 && digits[n] == '0' {
		n++
	}
	return n
}

func contiguous(lo, hi int64, width int) string {
	if lo > hi {
		lo, hi = hi, lo
	}

	var neg, pos []string
	if lo < 0 {
		nlo := int64(1)
		if hi < 0 {
			nlo = -hi
		}
		neg = splitPatterns(nlo, -lo, width)
	}
	if hi >= 0 {
		pos = splitPatterns(max(lo, 0), hi, width)
	}
	return join(neg, pos)
}

func stepped(lo, hi int64, step int, width int) string {
	if lo >= 0 && hi >= 0 && lo <= 9 && hi <= 9 && width <= 1 {
		var b strings.Builder
		b.WriteByte('[')
		for _, v := range enumerate(lo, hi, step) {
			b.WriteString(strconv.FormatInt(v, 10))
		}
		b.WriteByte(']')
		return b.String()
	}

	var neg, pos []string
	for _, v := range enumerate(lo, hi, step) {
		if v < 0 {
			neg = append(neg, pad(strconv.FormatInt(-v, 10), width))
		} else {
			pos = append(pos, pad(strconv.FormatInt(v, 10), width))
		}
	}
	longestFirst(neg)
	longestFirst(pos)
	return join(neg, pos)
}

// enumerate lists start, start±step, ... without passing end.
func enumerate(start, end int64, step int) []int64 {
	s := int64(step)
	var out []int64
	if start <= end {
		for v := start; v <= end; v += s {
			out = append(out, v)
		}
	} else {
		for v := start; v >= end; v -= s {
			out = append(out, v)
		}
	}
	return out
}

// join renders the negative run (magnitudes only) and the non-negative run
// as one alternation. The negative run is grouped so the sign binds to all
// of its members.
func join(neg, pos []string) string {
	var parts []string
	switch len(neg) {
	case 0:
	case 1:
		parts = append(parts, "-"+neg[0])
	default:
		parts = append(parts, "-(?:"+strings.Join(neg, "|")+")")
	}
	parts = append(parts, pos...)
	if len(parts) == 1 {
		return parts[0]
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}

// splitPatterns covers [lo, hi] (both non-negative) with one pattern per
// digit-aligned sub-range, widest numbers first.
func splitPatterns(lo, hi int64, width int) []string {
	stops := splitToRanges(lo, hi)
	out := make([]string, len(stops))
	start := lo
	for i, stop := range stops {
		out[len(stops)-1-i] = rangePattern(start, stop, width)
		start = stop + 1
	}
	return out
}

// splitToRanges returns, in ascending order, the upper bounds of the
// sub-ranges of [lo, hi] that share a fixed prefix followed by free digits.
func splitToRanges(lo, hi int64) []int64 {
	stops := map[int64]struct{}{hi: {}}

	nines := 1
	stop := countNines(lo, nines)
	for lo <= stop && stop <= hi {
		stops[stop] = struct{}{}
		nines++
		stop = countNines(lo, nines)
	}

	zeros := 1
	stop = countZeros(hi+1, zeros) - 1
	for lo < stop && stop <= hi {
		stops[stop] = struct{}{}
		zeros++
		stop = countZeros(hi+1, zeros) - 1
	}

	out := make([]int64, 0, len(stops))
	for s := range stops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// countNines replaces the last n digits of v with nines.
func countNines(v int64, n int) int64 {
	s := strconv.FormatInt(v, 10)
	prefix := ""
	if n < len(s) {
		prefix = s[:len(s)-n]
	}
	out, err := strconv.ParseInt(prefix+strings.Repeat("9", n), 10, 64)
	if err != nil {
		return 1<<63 - 1
	}
	return out
}

// countZeros clears the last n digits of v.
func countZeros(v int64, n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		if p > (1<<63-1)/10 {
			return 0
		}
		p *= 10
	}
	return v - v%p
}

// rangePattern renders [start, stop], two numbers of equal length whose
// differing digits are a prefix-aligned span.
func rangePattern(start, stop int64, width int) string {
	a, b := strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10)
	if start == stop {
		return pad(a, width)
	}

	var out strings.Builder
	free := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		switch {
		case x == y:
			out.WriteByte(x)
		case x != '0' || y != '9':
			out.WriteString(digitClass(x, y))
		default:
			free++
		}
	}
	if free > 0 {
		out.WriteString("[0-9]")
		if free > 1 {
			out.WriteString("{" + strconv.Itoa(free) + "}")
		}
	}
	return zeroPrefix(len(a), width) + out.String()
}

func digitClass(x, y byte) string {
	if y == x+1 {
		return "[" + string(x) + string(y) + "]"
	}
	return "[" + string(x) + "-" + string(y) + "]"
}

func pad(digits string, width int) string {
	return zeroPrefix(len(digits), width) + digits
}

func zeroPrefix(n, width int) string {
	if width <= n {
		return ""
	}
	return strings.Repeat("0", width-n)
}

// longestFirst orders alternatives so longer literals are tried before their
// prefixes.
func longestFirst(patterns []string) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return len(patterns[i]) > len(patterns[j])
	})
}
