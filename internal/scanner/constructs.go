package scanner

import (
	"github.com/vango-dev/vglob/internal/chars"
	"github.com/vango-dev/vglob/internal/ranges"
)

// abandon rolls back the current context c, hands its literal to the
// parent and rewinds the cursor to just after the opener.
func (s *Scanner) abandon(c *Context) {
	s.st.rollback()
	s.st.discard()
	s.st.pop()
	s.pos = c.resume
	s.segStart = false
}

// scanNegation handles a '!' at the start of the pattern. When the '!'
// opens a pattern list the negation does not consume it: the list owns the
// '!' and the negation only stands by to be dropped with it.
func (s *Scanner) scanNegation() {
	viaExtGlob := s.peekAt(1) == '(' && !s.opts.NoExtGlob

	c := s.st.push(KindNegation, 0, 1, "!")
	c.viaExtGlob = viaExtGlob
	c.dot = s.opts.Dot
	c.segStart = true
	if !viaExtGlob {
		s.advance(1)
	}

	s.scanPattern()
	if c.rolledBack {
		s.st.discard()
		s.st.pop()
		s.pos = c.resume
		s.segStart = false
		s.scanPattern()
		return
	}
	c.redundant = viaExtGlob
	s.st.pop()
}

func (s *Scanner) scanBrace() {
	start := s.pos
	c := s.st.push(KindBrace, start, start+1, chars.Structural['{'].Literal)
	c.segStart = s.segStart
	s.advance(1)
	bodyStart := s.pos

	for {
		s.segStart = c.segStart
		segBegin := s.pos
		s.scanPattern()
		if s.eof() {
			s.abandon(c)
			return
		}
		if s.pos == segBegin {
			c.emptyAlt = true
		}
		if s.peek() == ',' {
			c.commas++
			s.st.alt()
			s.advance(1)
			continue
		}
		break
	}

	body := string(s.pattern[bodyStart:s.pos])
	s.advance(1)

	if c.commas == 0 {
		r, ok := ranges.Parse(body)
		if !ok {
			s.abandon(c)
			return
		}
		s.st.discard()
		c.rangeExpr = r.Regex()
	}
	s.st.pop()
	s.segStart = false
}

func (s *Scanner) scanPatternList() {
	prefix := s.peek()
	start := s.pos
	g := chars.ExtGlob[prefix]
	c := s.st.push(KindPatternList, start, start+2, g.Literal)
	c.prefix = prefix
	c.segStart = s.segStart
	if prefix == '!' {
		c.guard = s.dotGuard()
	}
	s.advance(2)

	for {
		s.segStart = c.segStart
		s.scanPattern()
		if s.eof() {
			s.abandon(c)
			return
		}
		if s.peek() == '|' {
			s.st.alt()
			s.advance(1)
			continue
		}
		break
	}

	s.advance(1)
	s.st.pop()
	s.segStart = false
}

// scanClass reads a bracket expression. Members are emitted already in
// bracket syntax; the class renders them between '[' and ']'.
func (s *Scanner) scanClass() {
	start := s.pos
	guard := s.dotGuard()

	if s.peekAt(1) == ':' {
		if name, n, ok := s.posixAt(s.pos); ok {
			members, _ := chars.PosixClass(name)
			c := s.st.push(KindClass, start, start+1, chars.Structural['['].Literal)
			c.segStart = s.segStart
			s.st.emit(members)
			s.advance(n)
			s.st.pop()
			s.segStart = false
			return
		}
	}

	c := s.st.push(KindClass, start, start+1, chars.Structural['['].Literal)
	c.segStart = s.segStart
	s.advance(1)

	if r := s.peek(); r == '!' || r == '^' {
		c.negated = true
		c.guard = guard
		s.advance(1)
	}

	first := true
	for {
		if s.eof() {
			s.abandon(c)
			return
		}
		r := s.peek()
		if r == ']' && !first {
			s.advance(1)
			break
		}
		first = false

		if r == '[' && s.peekAt(1) == ':' {
			if name, n, ok := s.posixAt(s.pos); ok {
				members, _ := chars.PosixClass(name)
				s.st.emit(members)
				s.advance(n)
				continue
			}
		}

		lo, n := s.classChar(s.pos)
		hyphen := s.pos + n
		if hyphen+1 < len(s.pattern) && s.pattern[hyphen] == '-' && s.pattern[hyphen+1] != ']' {
			hi, m := s.classChar(hyphen + 1)
			if lo <= hi {
				s.st.emit(chars.EscapeClass(lo) + "-" + chars.EscapeClass(hi))
			} else {
				s.st.emit(chars.EscapeClass(lo) + `\-` + chars.EscapeClass(hi))
			}
			s.advance(n + 1 + m)
			continue
		}
		s.st.emit(chars.EscapeClass(lo))
		s.advance(n)
	}

	s.st.pop()
	s.segStart = false
}

// classChar returns the member at i and how many runes it spans. A
// backslash escapes the following rune.
func (s *Scanner) classChar(i int) (rune, int) {
	if s.pattern[i] == '\\' && i+1 < len(s.pattern) {
		return s.pattern[i+1], 2
	}
	return s.pattern[i], 1
}

// posixAt matches "[:name:]" at i for a known class name and returns the
// name and the number of runes it spans.
func (s *Scanner) posixAt(i int) (string, int, bool) {
	p := s.pattern
	if i+1 >= len(p) || p[i] != '[' || p[i+1] != ':' {
		return "", 0, false
	}
	for j := i + 2; j+1 < len(p); j++ {
		if p[j] == ':' && p[j+1] == ']' {
			name := string(p[i+2 : j])
			if _, ok := chars.PosixClass(name); !ok {
				return "", 0, false
			}
			return name, j + 2 - i, true
		}
		if p[j] < 'a' || p[j] > 'z' {
			return "", 0, false
		}
	}
	return "", 0, false
}
