package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/viant/alarmq"

// Span kinds accepted by StartSpan
const (
	KindInternal = "INTERNAL"
	KindProducer = "PRODUCER"
	KindConsumer = "CONSUMER"
)

var spanKinds = map[string]trace.SpanKind{
	KindProducer: trace.SpanKindProducer,
	KindConsumer: trace.SpanKindConsumer,
}

var (
	installOnce sync.Once
	installErr  error
)

// Init exports spans as JSON to outputFile, or to stdout when outputFile is
// empty. Only the first Init or InitWithExporter call takes effect.
func Init(serviceName, serviceVersion, outputFile string) error {
	w, err := output(outputFile)
	if err != nil {
		return fmt.Errorf("failed to open trace output: %w", err)
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return err
	}
	return InitWithExporter(serviceName, serviceVersion, exporter)
}

// InitWithExporter installs a global tracer provider backed by exporter. A nil
// exporter is ignored. Only the first call takes effect; later calls return
// the first result.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	installOnce.Do(func() {
		installErr = install(serviceName, serviceVersion, exporter)
	})
	return installErr
}

func install(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	res, err := resource.New(context.Background(), resource.WithAttributes(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
	))
	if err != nil {
		return err
	}
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	))
	return nil
}

func output(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

// Span is a nil-safe handle over an OpenTelemetry span
type Span struct {
	span trace.Span
}

// WithAttributes sets string attributes
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil {
		return s
	}
	for k, v := range attrs {
		s.span.SetAttributes(attribute.String(k, v))
	}
	return s
}

// WithInt sets an integer attribute
func (s *Span) WithInt(key string, value int) *Span {
	if s != nil {
		s.span.SetAttributes(attribute.Int(key, value))
	}
	return s
}

// SetStatus marks the span failed with err, or OK when err is nil
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err == nil {
		s.span.SetStatus(codes.Ok, "")
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// StartSpan starts a span of the given kind as a child of the span in ctx.
// Unknown kinds start an internal span. The parent ids are also recorded as
// attributes so that stdout traces can be correlated without a backend.
func StartSpan(ctx context.Context, name, kind string) (context.Context, *Span) {
	spanKind, ok := spanKinds[kind]
	if !ok {
		spanKind = trace.SpanKindInternal
	}
	parent := trace.SpanContextFromContext(ctx)
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(spanKind))
	if parent.IsValid() {
		span.SetAttributes(
			attribute.String("parent.trace_id", parent.TraceID().String()),
			attribute.String("parent.span_id", parent.SpanID().String()),
		)
	}
	return ctx, &Span{span: span}
}

// EndSpan sets the span status from err and ends it
func EndSpan(span *Span, err error) {
	if span == nil {
		return
	}
	span.SetStatus(err)
	span.span.End()
}
