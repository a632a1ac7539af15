package vglob

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/vglob/pkg/cache"
)

// DefaultCacheSize is the number of compiled patterns a Compiler keeps.
const DefaultCacheSize = 512

// Request is one compilation handed through the middleware chain.
type Request struct {
	Glob    string
	Options Options
}

// CompileFunc compiles one request.
type CompileFunc func(ctx context.Context, req Request) (*Pattern, error)

// Middleware wraps a CompileFunc. Middleware sees only compilations that
// missed the cache.
type Middleware func(next CompileFunc) CompileFunc

// cacheKey identifies a compiled pattern.
type cacheKey struct {
	glob string
	opts Options
}

// Compiler compiles globs with shared defaults, memoizing the results.
// A Compiler is safe for concurrent use once configured.
type Compiler struct {
	opts       Options
	cacheSize  int
	cache      *cache.LRU[cacheKey, *Pattern]
	timeout    time.Duration
	logger     *slog.Logger
	middleware []Middleware
	onCache    func(hit bool)
	chain      CompileFunc
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithOptions sets the options Compile uses.
func WithOptions(opts Options) CompilerOption {
	return func(c *Compiler) {
		c.opts = opts
	}
}

// WithCacheSize sets how many compiled patterns are kept. 0 disables the
// cache.
func WithCacheSize(n int) CompilerOption {
	return func(c *Compiler) {
		c.cacheSize = n
	}
}

// WithMatchTimeout bounds each match of the compiled patterns. 0 means no
// bound.
func WithMatchTimeout(d time.Duration) CompilerOption {
	return func(c *Compiler) {
		c.timeout = d
	}
}

// WithLogger sets the logger compiled patterns report timeouts to.
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithMiddleware appends compile middleware. The first middleware is the
// outermost.
func WithMiddleware(mw ...Middleware) CompilerOption {
	return func(c *Compiler) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithCacheObserver registers fn to be told about every cache lookup.
func WithCacheObserver(fn func(hit bool)) CompilerOption {
	return func(c *Compiler) {
		c.onCache = fn
	}
}

// NewCompiler creates a Compiler.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		cacheSize: DefaultCacheSize,
		timeout:   DefaultMatchTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.cacheSize > 0 {
		c.cache = cache.New[cacheKey, *Pattern](c.cacheSize)
	}
	c.build()
	return c
}

// Use appends middleware. It must not be called concurrently with Compile.
func (c *Compiler) Use(mw ...Middleware) {
	c.middleware = append(c.middleware, mw...)
	c.build()
}

func (c *Compiler) build() {
	next := CompileFunc(func(_ context.Context, req Request) (*Pattern, error) {
		return compile(req.Glob, req.Options, c.timeout, c.logger)
	})
	for i := len(c.middleware) - 1; i >= 0; i-- {
		next = c.middleware[i](next)
	}
	c.chain = next
}

// Options returns the options Compile uses.
func (c *Compiler) Options() Options {
	return c.opts
}

// Compile compiles glob with the Compiler's options.
func (c *Compiler) Compile(ctx context.Context, glob string) (*Pattern, error) {
	return c.CompileWith(ctx, glob, c.opts)
}

// CompileWith compiles glob with explicit options.
func (c *Compiler) CompileWith(ctx context.Context, glob string, opts Options) (*Pattern, error) {
	key := cacheKey{glob: glob, opts: opts}
	if c.cache != nil {
		p, ok := c.cache.Get(key)
		if c.onCache != nil {
			c.onCache(ok)
		}
		if ok {
			return p, nil
		}
	}

	p, err := c.chain(ctx, Request{Glob: glob, Options: opts})
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, p)
	}
	return p, nil
}

// Split splits glob with the Compiler's options.
func (c *Compiler) Split(glob string) SplitResult {
	return Split(glob, c.opts)
}

// CacheLen returns the number of memoized patterns.
func (c *Compiler) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// CacheStats returns the cache counters.
func (c *Compiler) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.Stats()
}
