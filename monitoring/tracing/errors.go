package tracing

import "go.opencensus.io/trace"

// AnnotateError marks the span as failed with err.
func AnnotateError(span *trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetStatus(trace.Status{
		Code:    trace.StatusCodeUnknown,
		Message: err.Error(),
	})
}
