// Package scanner compiles glob patterns into anchored regular expressions.
//
// The scanner makes one left-to-right pass over the pattern. Each nested
// construct (brace, bracket expression, pattern list, leading negation)
// opens a Context; when the construct never finds its closer the Context
// is rolled back, its opener is read as a literal, and scanning resumes
// right after the opener. Compilation therefore never fails on input.
//
// Closed contexts stay in the tree until the whole pattern is read, then
// the tree is rendered. A negated pattern list such as !(a|b) needs the
// text that follows it to decide where its lookahead ends.
//
// The emitted dialect uses lookahead and targets
// github.com/dlclark/regexp2.
package scanner
