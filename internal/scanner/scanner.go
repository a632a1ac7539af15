package scanner

import (
	"strconv"

	"github.com/vango-dev/vglob/internal/chars"
	"github.com/vango-dev/vglob/internal/errors"
)

// Result is a compiled pattern.
type Result struct {
	// Source is the anchored expression, without flags.
	Source string

	// Negated is set when a leading '!' negated the whole pattern.
	Negated bool

	// Root is the parse tree the expression was rendered from.
	Root *Context
}

// Scanner walks a pattern once, left to right.
type Scanner struct {
	pattern []rune
	pos     int
	opts    Options
	st      *stack

	// segStart is true while nothing has been emitted since the start of
	// the pattern or the last path separator.
	segStart bool
}

// New returns a scanner for pattern.
func New(pattern string, opts Options) *Scanner {
	return &Scanner{
		pattern:  []rune(pattern),
		opts:     opts,
		st:       newStack(),
		segStart: true,
	}
}

// Compile translates pattern into an anchored expression. It never fails:
// constructs without their closing token are read literally.
func Compile(pattern string, opts Options) Result {
	return New(pattern, opts).Compile()
}

// Compile runs the scanner. It must be called once.
func (s *Scanner) Compile() Result {
	if s.peek() == '!' && !s.opts.NoNegate {
		s.scanNegation()
	} else {
		s.scanPattern()
	}

	negated := false
	for _, c := range s.st.root.children {
		if c.Kind == KindNegation && !c.rolledBack && !c.redundant {
			negated = true
		}
	}

	return Result{
		Source:  "^(?:" + s.st.root.render("$", false) + ")$",
		Negated: negated,
		Root:    s.st.root,
	}
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.pattern)
}

func (s *Scanner) peek() rune {
	return s.peekAt(0)
}

// peekAt returns the rune n places ahead, or 0 past the end.
func (s *Scanner) peekAt(n int) rune {
	if i := s.pos + n; i >= 0 && i < len(s.pattern) {
		return s.pattern[i]
	}
	return 0
}

func (s *Scanner) advance(n int) {
	s.pos += n
	if s.pos > len(s.pattern) {
		panic(errors.New("E001").
			WithDetail("cursor at " + strconv.Itoa(s.pos) + " in a pattern of " + strconv.Itoa(len(s.pattern)) + " runes"))
	}
}

func (s *Scanner) emit(fragment string) {
	s.st.emit(fragment)
	s.segStart = false
}

// stopsAt reports whether r ends the current alternative of the current
// context.
func (s *Scanner) stopsAt(r rune) bool {
	switch {
	case s.st.inside(KindBrace, 1):
		return r == ',' || r == '}'
	case s.st.inside(KindPatternList, 1):
		return r == '|' || r == ')'
	}
	return false
}

// scanPattern consumes input into the current context until the input
// ends, the context is abandoned, or a character closes the current
// alternative.
func (s *Scanner) scanPattern() {
	for !s.eof() && !s.st.cur.rolledBack {
		r := s.peek()
		if s.stopsAt(r) {
			return
		}

		switch {
		case chars.IsQuote(r):
			s.scanQuote()
		case r == '\\':
			s.scanEscape()
		case r == '/':
			s.st.emit(chars.Sep)
			s.advance(1)
			s.segStart = true
		case r == '{' && !s.opts.NoBrace:
			s.scanBrace()
		case chars.IsExtGlobPrefix(r) && s.peekAt(1) == '(' && !s.opts.NoExtGlob:
			s.scanPatternList()
		case r == '?':
			s.scanQuestion()
		case r == '*':
			s.scanStar()
		case r == '[':
			s.scanClass()
		default:
			s.emit(chars.Escape(r))
			s.advance(1)
		}
	}
}

// dotGuard returns the fragment that keeps a wildcard off a leading dot.
func (s *Scanner) dotGuard() string {
	if s.segStart && !s.opts.Dot {
		return chars.NoDot
	}
	return ""
}

func (s *Scanner) scanEscape() {
	if s.pos+1 >= len(s.pattern) {
		s.emit(`\\`)
		s.advance(1)
		return
	}
	next := s.pattern[s.pos+1]
	if chars.IsEscapable(next) {
		s.emit(chars.Escape(next))
	} else {
		s.emit(`\\` + chars.Escape(next))
	}
	s.advance(2)
}

func (s *Scanner) scanQuestion() {
	s.emit(s.dotGuard() + chars.NotSep)
	s.advance(1)
}

func (s *Scanner) scanStar() {
	n := 1
	for s.peekAt(n) == '*' && (s.opts.NoExtGlob || s.peekAt(n+1) != '(') {
		n++
	}
	next := s.peekAt(n)
	atEnd := s.pos+n >= len(s.pattern)
	boundary := s.segStart && (atEnd || next == '/' || s.stopsAt(next))

	if n == 2 && boundary && !s.opts.NoGlobStar {
		s.advance(2)
		if next == '/' {
			s.advance(1)
			s.st.emit("(?:" + s.segment() + chars.Sep + ")*")
			s.segStart = true
			return
		}
		s.emit("(?:" + s.segment() + "(?:" + chars.Sep + s.segment() + ")*)?")
		return
	}

	s.emit(s.dotGuard() + chars.NotSep + "*")
	s.advance(n)
}

// segment matches one whole path segment a globstar may cross.
func (s *Scanner) segment() string {
	if s.opts.Dot {
		return `(?!\.{1,2}` + chars.SegmentEnd + `)` + chars.NotSep + "+"
	}
	return chars.NoDot + chars.NotSep + "+"
}

func (s *Scanner) scanQuote() {
	q := s.peek()
	end := findQuoteEnd(s.pattern, s.pos+1, q)
	if end < 0 {
		s.emit(chars.Escape(q))
		s.advance(1)
		return
	}

	var out []rune
	for i := s.pos + 1; i < end; i++ {
		r := s.pattern[i]
		if r == '\\' && i+1 < end && (s.pattern[i+1] == q || s.pattern[i+1] == '\\') {
			i++
			r = s.pattern[i]
		}
		out = append(out, r)
	}
	if len(out) > 0 {
		s.emit(chars.EscapeString(string(out)))
	}
	s.advance(end + 1 - s.pos)
}

// findQuoteEnd returns the index of the next unescaped q at or after from,
// or -1.
func findQuoteEnd(p []rune, from int, q rune) int {
	for i := from; i < len(p); i++ {
		switch p[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}
