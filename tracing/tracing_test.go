package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Local provider records spans", t, func() {
		recorder := tracetest.NewSpanRecorder()
		tp, err := New(Options{Processors: []sdktrace.SpanProcessor{recorder}})
		So(err, ShouldBeNil)

		_, span := tp.Tracer("test").Start(context.Background(), "op")
		So(span.SpanContext().TraceID().IsValid(), ShouldBeTrue)
		span.End()

		ended := recorder.Ended()
		So(ended, ShouldHaveLength, 1)
		So(ended[0].Name(), ShouldEqual, "op")
		v, ok := ended[0].Resource().Set().Value("service.name")
		So(ok, ShouldBeTrue)
		So(v.AsString(), ShouldEqual, DefaultServiceName)

		So(tp.Shutdown(context.Background()), ShouldBeNil)
	})
}
