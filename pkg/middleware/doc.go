// Package middleware provides compile middleware for vglob.Compiler.
//
// Middleware wraps the compilation of patterns that missed the Compiler's
// cache. Cache lookups themselves are reported through
// vglob.WithCacheObserver.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry opens a "vglob.compile" span per compilation with the glob,
// the options and the size of the emitted expression:
//
//	c := vglob.NewCompiler(
//	    vglob.WithMiddleware(
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-service"),
//	        ),
//	    ),
//	)
//
// # Prometheus Metrics
//
// Metrics registers counters and histograms for compilations, cache lookups,
// evaluated paths and live-match sessions:
//
//   - vglob_compiles_total: Compilations by status
//   - vglob_compile_duration_seconds: Compile duration histogram
//   - vglob_cache_lookups_total: Cache lookups by result
//   - vglob_matches_total: Evaluated paths by result
//
// Wire them into a Compiler:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	c := vglob.NewCompiler(
//	    vglob.WithMiddleware(m.Middleware()),
//	    vglob.WithCacheObserver(m.RecordCacheLookup),
//	)
//
// Prometheus and the package-level Record functions use one process-wide
// Metrics registered on prometheus.DefaultRegisterer.
package middleware
