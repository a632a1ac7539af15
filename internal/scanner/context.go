package scanner

import (
	"strings"

	"github.com/vango-dev/vglob/internal/chars"
)

// Kind identifies the construct a Context was opened for.
type Kind int

const (
	KindLiteral Kind = iota
	KindBrace
	KindClass
	KindNegation
	KindPatternList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindBrace:
		return "brace"
	case KindClass:
		return "class"
	case KindNegation:
		return "negation"
	case KindPatternList:
		return "pattern-list"
	default:
		return "unknown"
	}
}

// token is one emitted unit. Closed child contexts stay unrendered until
// the whole pattern is known, since a negated pattern list needs to see
// what follows it.
type token struct {
	text  string
	alt   bool
	child *Context
}

// Context is a node of the parse tree.
type Context struct {
	Kind     Kind
	parent   *Context
	children []*Context
	tokens   []token

	// start is the pattern index of the opener, resume the index scanning
	// continues from when the construct is abandoned and literal the text
	// emitted in its place.
	start   int
	resume  int
	literal string

	rolledBack bool

	// segStart records whether the context opened at the start of a path
	// segment; every alternative begins in that state.
	segStart bool

	// guard is emitted in front of the construct to keep it off dotfiles.
	guard string

	// brace
	commas    int
	emptyAlt  bool
	rangeExpr string

	// class
	negated bool

	// pattern list
	prefix rune

	// negation
	viaExtGlob bool
	redundant  bool
	dot        bool

	flatText string
	flatDone bool

	lookAhead bool
	lookDone  bool
}

// RolledBack reports whether the construct was abandoned.
func (c *Context) RolledBack() bool { return c.rolledBack }

// Children returns the contexts opened directly inside c, in order.
func (c *Context) Children() []*Context { return c.children }

// stack tracks the current context. Only the current context receives
// tokens.
type stack struct {
	root *Context
	cur  *Context
}

func newStack() *stack {
	root := &Context{Kind: KindLiteral, segStart: true}
	return &stack{root: root, cur: root}
}

// push opens a context under the current one and makes it current.
func (st *stack) push(kind Kind, start, resume int, literal string) *Context {
	c := &Context{
		Kind:    kind,
		parent:  st.cur,
		start:   start,
		resume:  resume,
		literal: literal,
	}
	st.cur = c
	return c
}

// pop closes the current context and hands it to its parent: as a
// deferred child when it closed, as its literal text when it rolled back.
func (st *stack) pop() *Context {
	c := st.cur
	p := c.parent
	p.children = append(p.children, c)
	if c.rolledBack {
		p.tokens = append(p.tokens, token{text: c.literal})
	} else {
		p.tokens = append(p.tokens, token{child: c})
	}
	st.cur = p
	return c
}

// emit appends a fragment to the current context.
func (st *stack) emit(fragment string) {
	st.cur.tokens = append(st.cur.tokens, token{text: fragment})
}

// alt starts a new alternative in the current context.
func (st *stack) alt() {
	st.cur.tokens = append(st.cur.tokens, token{alt: true})
}

// discard drops everything the current context emitted so far.
func (st *stack) discard() {
	st.cur.tokens = st.cur.tokens[:0]
}

// rollback abandons the current context. A pattern list that owns the
// leading '!' of an enclosing negation takes the negation down with it.
func (st *stack) rollback() {
	c := st.cur
	c.rolledBack = true
	if c.Kind == KindPatternList {
		if p := c.parent; p.Kind == KindNegation && p.viaExtGlob && p.start == c.start {
			p.rolledBack = true
		}
	}
}

// inside reports whether the current context or one of its ancestors, at
// most depth levels up (depth 1 is the current context), has the given
// kind. depth <= 0 searches to the root.
func (st *stack) inside(kind Kind, depth int) bool {
	n := 0
	for c := st.cur; c != nil; c = c.parent {
		n++
		if depth > 0 && n > depth {
			return false
		}
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// render returns the expression for c, followed by rest. With flat set
// negated pattern lists do not look ahead, which keeps the continuation
// handed to an earlier negated list linear in size.
func (c *Context) render(rest string, flat bool) string {
	if flat {
		if !c.flatDone {
			c.flatText = c.renderKind("", true)
			c.flatDone = true
		}
		return c.flatText
	}
	return c.renderKind(rest, false)
}

func (c *Context) renderKind(rest string, flat bool) string {
	switch c.Kind {
	case KindBrace:
		if c.rangeExpr != "" {
			return "(?:" + c.rangeExpr + ")"
		}
		alts, hadEmpty := nonEmpty(c.alternatives(rest, flat))
		if len(alts) == 0 {
			return ""
		}
		out := chars.Structural['{'].Open + strings.Join(alts, "|") + chars.Structural['{'].Close
		if c.emptyAlt || hadEmpty {
			out += "?"
		}
		return out

	case KindClass:
		var b strings.Builder
		b.WriteString(c.guard)
		b.WriteString(chars.Structural['['].Open)
		if c.negated {
			b.WriteByte('^')
		}
		for _, t := range c.tokens {
			b.WriteString(t.text)
		}
		if c.negated {
			b.WriteString(`\\/`)
		}
		b.WriteString(chars.Structural['['].Close)
		return b.String()

	case KindPatternList:
		g := chars.ExtGlob[c.prefix]
		alts := c.alternatives(rest, flat)
		if c.prefix != '!' {
			return g.Open + strings.Join(alts, "|") + g.Close
		}
		if flat {
			return "(?:" + c.guard + chars.NotSep + "*?)"
		}
		return c.guard + g.Open + strings.Join(alts, "|") + g.Close + rest + chars.NegatedListTail

	case KindNegation:
		body := strings.Join(c.alternatives(rest, flat), "|")
		if c.redundant {
			return body
		}
		out := "(?!(?:" + body + ")$)"
		if !c.dot {
			out += chars.NoDot
		}
		return out + chars.Any + "*"

	default:
		return strings.Join(c.alternatives(rest, flat), "|")
	}
}

// alternatives renders the tokens of c split at alternative boundaries.
// Tokens are walked right to left so a child holding a negated pattern
// list sees the flat rendering of everything after it in its alternative,
// then rest. The flat suffix is only joined for such children.
func (c *Context) alternatives(rest string, flat bool) []string {
	var alts []string
	var parts []string
	var after []string

	flush := func() {
		alts = append(alts, joinReversed(parts, ""))
		parts = parts[:0]
	}

	for i := len(c.tokens) - 1; i >= 0; i-- {
		t := c.tokens[i]
		switch {
		case t.alt:
			flush()
			after = after[:0]
		case t.child != nil:
			look := rest
			if !flat && t.child.looksAhead() {
				look = joinReversed(after, rest)
			}
			parts = append(parts, t.child.render(look, flat))
			after = append(after, t.child.render("", true))
		default:
			parts = append(parts, t.text)
			after = append(after, t.text)
		}
	}
	flush()

	for i, j := 0, len(alts)-1; i < j; i, j = i+1, j-1 {
		alts[i], alts[j] = alts[j], alts[i]
	}
	return alts
}

// looksAhead reports whether c or a context nested in it is a negated
// pattern list, the only construct whose rendering depends on rest.
func (c *Context) looksAhead() bool {
	if !c.lookDone {
		c.lookAhead = c.Kind == KindPatternList && c.prefix == '!'
		for _, t := range c.tokens {
			if c.lookAhead {
				break
			}
			if t.child != nil {
				c.lookAhead = t.child.looksAhead()
			}
		}
		c.lookDone = true
	}
	return c.lookAhead
}

// joinReversed concatenates parts back to front, then tail.
func joinReversed(parts []string, tail string) string {
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	b.WriteString(tail)
	return b.String()
}

// nonEmpty drops alternatives that render to nothing and reports whether
// there were any.
func nonEmpty(alts []string) ([]string, bool) {
	out := alts[:0:0]
	for _, a := range alts {
		if a != "" {
			out = append(out, a)
		}
	}
	return out, len(out) != len(alts)
}
