package vglob

import (
	"context"
	"testing"
)

var benchGlobs = []string{
	"*.go",
	"src/**/*.{ts,tsx,js,jsx}",
	"!(*.min).js",
	"{1..100..3}/[[:alpha:]]*",
	"**/node_modules/**",
}

func BenchmarkCompile(b *testing.B) {
	for _, glob := range benchGlobs {
		b.Run(glob, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Compile(glob, Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompilerCached(b *testing.B) {
	c := NewCompiler()
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compile(ctx, benchGlobs[i%len(benchGlobs)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatch(b *testing.B) {
	p := MustCompile("src/**/*.{ts,tsx,js,jsx}", Options{})
	paths := []string{
		"src/app/components/button/index.tsx",
		"src/.cache/x.js",
		"lib/a/b/c/d/e/f/g.go",
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Match(paths[i%len(paths)])
	}
}
