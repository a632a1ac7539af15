// Package vglob compiles shell-style glob patterns into anchored regular
// expressions and matches paths against them.
//
// Usage:
//
//	p := vglob.MustCompile("src/**/*.{go,mod}", vglob.Options{})
//	p.Match("src/internal/scanner/scanner.go") // true
//
//	split := vglob.Split("src/**/*.go", vglob.Options{})
//	// split.Path == "src", split.Pattern == "**/*.go"
//
// Supported syntax: * ? [...] [[:class:]] {a,b} {1..10..2} ** and the
// extglob groups @(...) !(...) ?(...) *(...) +(...), a leading ! negating
// the whole pattern, backslash escapes and quoted spans. Constructs missing
// their closer are read literally, so compiling never fails on input.
//
// Both '/' and '\' separate path segments.
package vglob

import (
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/vango-dev/vglob/internal/errors"
	"github.com/vango-dev/vglob/internal/scanner"
)

// DefaultMatchTimeout bounds a single match of a Pattern built by Compile.
const DefaultMatchTimeout = 100 * time.Millisecond

// Options switch individual glob features. The zero value enables every
// feature and keeps wildcards off dotfiles.
type Options = scanner.Options

// SplitResult is a glob divided into a static directory prefix and the
// pattern that applies below it.
type SplitResult = scanner.SplitResult

// Pattern is a compiled glob. It is safe for concurrent use.
type Pattern struct {
	glob    string
	opts    Options
	source  string
	negated bool
	re      *regexp2.Regexp
	timeout time.Duration
	logger  *slog.Logger
}

// Compile compiles glob with the given options.
//
// Malformed glob syntax never causes an error. The error is non-nil only
// when the regex engine refuses the emitted expression, which indicates a
// defect in vglob.
func Compile(glob string, opts Options) (*Pattern, error) {
	return compile(glob, opts, DefaultMatchTimeout, slog.Default())
}

// MustCompile is like Compile but panics on error.
func MustCompile(glob string, opts Options) *Pattern {
	p, err := Compile(glob, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Split returns the longest leading run of whole path segments in glob that
// contain no glob syntax, and the remaining pattern. A leading '!' moves to
// the remaining pattern.
func Split(glob string, opts Options) SplitResult {
	return scanner.Split(glob, opts)
}

func compile(glob string, opts Options, timeout time.Duration, logger *slog.Logger) (*Pattern, error) {
	res := scanner.Compile(glob, opts)

	flags := regexp2.None
	if opts.NoCase {
		flags = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(res.Source, flags)
	if err != nil {
		return nil, errors.New("E010").
			WithPattern(glob, 0).
			WithDetail("The scanner emitted " + res.Source + " which the regex engine cannot parse.").
			WithSuggestion("Report the pattern and its options (" + opts.String() + ")").
			Wrap(err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return &Pattern{
		glob:    glob,
		opts:    opts,
		source:  res.Source,
		negated: res.Negated,
		re:      re,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Glob returns the pattern the Pattern was compiled from.
func (p *Pattern) Glob() string { return p.glob }

// Options returns the options the Pattern was compiled with.
func (p *Pattern) Options() Options { return p.opts }

// Source returns the anchored expression, without flags.
func (p *Pattern) Source() string { return p.source }

// IgnoreCase reports whether matching ignores case.
func (p *Pattern) IgnoreCase() bool { return p.opts.NoCase }

// Negated reports whether a leading '!' negated the whole pattern.
func (p *Pattern) Negated() bool { return p.negated }

// String returns the expression in /source/flags form.
func (p *Pattern) String() string {
	s := "/" + p.source + "/"
	if p.opts.NoCase {
		s += "i"
	}
	return s
}

// MatchString reports whether path matches. The error is non-nil when the
// match timeout elapsed.
func (p *Pattern) MatchString(path string) (bool, error) {
	ok, err := p.re.MatchString(path)
	if err != nil {
		return false, errors.New("E011").
			WithPattern(p.glob, 0).
			WithDetail("Matching " + path + " took longer than " + p.timeout.String() + ".").
			Wrap(err)
	}
	return ok, nil
}

// Match reports whether path matches. A match that times out counts as no
// match and is logged.
func (p *Pattern) Match(path string) bool {
	ok, err := p.MatchString(path)
	if err != nil {
		p.logger.Warn("glob match timed out",
			"glob", p.glob,
			"path", path,
			"timeout", p.timeout,
		)
		return false
	}
	return ok
}

// Filter returns the paths that match, in input order.
func (p *Pattern) Filter(paths []string) []string {
	var out []string
	for _, path := range paths {
		if p.Match(path) {
			out = append(out, path)
		}
	}
	return out
}

// MatchAny reports whether path matches at least one of the patterns.
func MatchAny(patterns []*Pattern, path string) bool {
	for _, p := range patterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}
