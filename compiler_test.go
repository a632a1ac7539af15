package vglob

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCompiler_UsesDefaults(t *testing.T) {
	c := NewCompiler(WithOptions(Options{Dot: true}))

	p, err := c.Compile(context.Background(), "*")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Match(".env") {
		t.Error("compiler options should enable dot")
	}
	if !c.Options().Dot {
		t.Error("Options() should report dot")
	}

	split := c.Split("a/b/*")
	if split.Path != "a/b" {
		t.Errorf("Split().Path = %q, want a/b", split.Path)
	}
}

func TestCompiler_Caches(t *testing.T) {
	var lookups []bool
	c := NewCompiler(
		WithCacheSize(2),
		WithCacheObserver(func(hit bool) { lookups = append(lookups, hit) }),
	)
	ctx := context.Background()

	a1, _ := c.Compile(ctx, "a")
	a2, _ := c.Compile(ctx, "a")
	if a1 != a2 {
		t.Error("second compile should return the cached pattern")
	}

	// Options are part of the key
	a3, _ := c.CompileWith(ctx, "a", Options{NoCase: true})
	if a3 == a1 {
		t.Error("different options must not share a cache entry")
	}

	c.Compile(ctx, "b")
	if c.CacheLen() != 2 {
		t.Errorf("CacheLen() = %d, want 2", c.CacheLen())
	}

	want := []bool{false, true, false, false}
	if len(lookups) != len(want) {
		t.Fatalf("lookups = %v, want %v", lookups, want)
	}
	for i := range want {
		if lookups[i] != want[i] {
			t.Errorf("lookup %d hit = %v, want %v", i, lookups[i], want[i])
		}
	}

	stats := c.CacheStats()
	if stats.Hits != 1 || stats.Misses != 3 || stats.Evictions != 1 {
		t.Errorf("CacheStats() = %+v", stats)
	}
}

func TestCompiler_CacheDisabled(t *testing.T) {
	called := false
	c := NewCompiler(
		WithCacheSize(0),
		WithCacheObserver(func(bool) { called = true }),
	)
	ctx := context.Background()

	a1, _ := c.Compile(ctx, "a")
	a2, _ := c.Compile(ctx, "a")
	if a1 == a2 {
		t.Error("disabled cache should compile every time")
	}
	if called {
		t.Error("observer should not be called without a cache")
	}
	if c.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d, want 0", c.CacheLen())
	}
	if c.CacheStats().Misses != 0 {
		t.Errorf("CacheStats() = %+v, want zero", c.CacheStats())
	}
}

func TestCompiler_MiddlewareOrder(t *testing.T) {
	var calls []string
	record := func(name string) Middleware {
		return func(next CompileFunc) CompileFunc {
			return func(ctx context.Context, req Request) (*Pattern, error) {
				calls = append(calls, name+">"+req.Glob)
				p, err := next(ctx, req)
				calls = append(calls, name+"<")
				return p, err
			}
		}
	}

	c := NewCompiler(WithMiddleware(record("outer")))
	c.Use(record("inner"))
	ctx := context.Background()

	if _, err := c.Compile(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	// Cache hit bypasses middleware
	if _, err := c.Compile(ctx, "x"); err != nil {
		t.Fatal(err)
	}

	got := strings.Join(calls, " ")
	want := "outer>x inner>x inner< outer<"
	if got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestCompiler_MiddlewareCanRewrite(t *testing.T) {
	lower := func(next CompileFunc) CompileFunc {
		return func(ctx context.Context, req Request) (*Pattern, error) {
			req.Options.NoCase = true
			return next(ctx, req)
		}
	}
	c := NewCompiler(WithMiddleware(lower), WithCacheSize(0))

	p, err := c.Compile(context.Background(), "ABC")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Match("abc") {
		t.Errorf("%s should match abc", p)
	}
}

func TestCompiler_TimeoutAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewCompiler(WithMatchTimeout(time.Second), WithLogger(logger))

	p, err := c.Compile(context.Background(), "*")
	if err != nil {
		t.Fatal(err)
	}
	if p.timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", p.timeout)
	}
	if p.logger != logger {
		t.Error("pattern should carry the compiler logger")
	}

	c = NewCompiler(WithLogger(nil))
	if c.logger == nil {
		t.Error("nil logger should fall back to the default")
	}
}

func TestCompiler_Concurrent(t *testing.T) {
	c := NewCompiler(WithCacheSize(8))
	ctx := context.Background()
	globs := []string{"*.go", "**/*.md", "{a,b}", "!(x)", "[abc]", "src/**"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				glob := globs[i%len(globs)]
				p, err := c.Compile(ctx, glob)
				if err != nil {
					t.Error(err)
					return
				}
				p.Match("src/a.go")
			}
		}()
	}
	wg.Wait()
}
