package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader содержит идентификатор запроса.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID возвращает идентификатор запроса из контекста.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.data.size += size
	return size, err
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.data.status = statusCode
}

// Logger логирует каждый запрос: метод, путь, статус, размер ответа и длительность.
// Идентификатор запроса берётся из заголовка X-Request-ID или генерируется.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			data := &responseData{status: http.StatusOK}
			lw := &loggingResponseWriter{ResponseWriter: w, data: data}

			next.ServeHTTP(lw, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", data.status),
				zap.Int("size", data.size),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
