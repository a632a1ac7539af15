package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vglob"
)

// Default tracer name for vglob.
const defaultTracerName = "github.com/vango-dev/vglob"

// SpanName is the name of compile spans.
const SpanName = "vglob.compile"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// IncludeSource records the emitted expression as a span attribute.
	// Expressions for long globs can be large - disabled by default.
	IncludeSource bool

	// Filter determines which compilations to trace.
	// If nil, all compilations are traced.
	Filter func(req vglob.Request) bool

	// AttributeExtractor adds custom attributes for a compilation.
	AttributeExtractor func(req vglob.Request) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeSource enables recording the emitted expression.
func WithIncludeSource(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeSource = include
	}
}

// WithFilter sets a filter function for compilations.
func WithFilter(filter func(req vglob.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(req vglob.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates compile middleware that opens a span for every
// compilation that missed the cache.
//
// The span carries the glob, its options, the negation flag and the length
// of the emitted expression. Errors are recorded and set the span status.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in main() before compiling:
//
//	otel.SetTracerProvider(tp)
//	c := vglob.NewCompiler(vglob.WithMiddleware(middleware.OpenTelemetry()))
func OpenTelemetry(opts ...OTelOption) vglob.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(next vglob.CompileFunc) vglob.CompileFunc {
		return func(ctx context.Context, req vglob.Request) (*vglob.Pattern, error) {
			if config.Filter != nil && !config.Filter(req) {
				return next(ctx, req)
			}

			attrs := []attribute.KeyValue{
				attribute.String("vglob.glob", req.Glob),
				attribute.String("vglob.options", req.Options.String()),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(req)...)
			}

			spanCtx, span := config.tracer.Start(
				ctx,
				SpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
				trace.WithTimestamp(time.Now()),
			)
			defer span.End()

			p, err := next(spanCtx, req)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}

			span.SetAttributes(
				attribute.Bool("vglob.negated", p.Negated()),
				attribute.Int("vglob.source_length", len(p.Source())),
			)
			if config.IncludeSource {
				span.SetAttributes(attribute.String("vglob.source", p.Source()))
			}
			span.SetStatus(codes.Ok, "")
			return p, nil
		}
	}
}

// SpanFromContext returns the compile span carried by ctx, or nil when ctx
// holds no recording span. Middleware placed inside OpenTelemetry can use it
// to annotate the span.
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() && !span.IsRecording() {
		return nil
	}
	return span
}
