package service

import (
	"context"
	"net/http"
	"time"

	"github.com/lucsky/cuid"

	log "github.com/sirupsen/logrus"
)

type requestIDKey struct{}

const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withRequestLogging tags every request with a cuid and logs its outcome.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := cuid.New()
		w.Header().Set(requestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		log.WithField("requestID", requestID).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("status", recorder.status).
			WithField("duration", time.Since(start)).
			Debug("request completed")
	})
}

func requestLogger(r *http.Request) *log.Entry {
	requestID, _ := r.Context().Value(requestIDKey{}).(string)
	return log.WithField("requestID", requestID)
}
