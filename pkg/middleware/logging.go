package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
)

type statusCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *statusCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusCaptureWriter) Write(p []byte) (int, error) {
	if !w.statusWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

func (w *statusCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

// WithLogger creates the root span for each request and injects a
// request-scoped *logrus.Entry into the context.
func WithLogger(logger *logrus.Logger, requestIDHeader string) mux.MiddlewareFunc {
	tracer := otel.Tracer("nimbusdesk/http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
					attribute.String("http.host", r.Host),
					attribute.String("request.id", requestID),
				),
			)
			defer span.End()

			entry := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"host":       r.Host,
			})

			ctx = composables.WithRequestID(ctx, requestID)
			ctx = composables.WithLogger(ctx, entry)

			captured := &statusCaptureWriter{ResponseWriter: w}
			next.ServeHTTP(captured, r.WithContext(ctx))

			status := captured.Status()
			span.SetAttributes(attribute.Int("http.status_code", status))
			entry.WithFields(logrus.Fields{
				"status":   status,
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
