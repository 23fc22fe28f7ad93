package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// statusRecorder は http.ResponseWriter をラップし、ステータスコードを記録します。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (sr *statusRecorder) WriteHeader(statusCode int) {
	sr.statusCode = statusCode
	sr.ResponseWriter.WriteHeader(statusCode)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytesOut += n
	return n, err
}

// LoggingMiddleware はリクエスト/レスポンスのログ出力を一元管理するミドルウェアです。
// リクエストID付きのロガーをコンテキストに格納し、以降の層は GetLogger で取り出します。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			ctx := context.WithValue(r.Context(), logCtxKey{}, requestLogger)
			r = r.WithContext(ctx)

			requestLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			sr := newStatusRecorder(w)
			next.ServeHTTP(sr, r)

			latency := time.Since(startTime)

			// 4xx/5xx はログレベルを上げる
			logLevel := slog.LevelInfo
			if sr.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if sr.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), logLevel, "Request completed",
				"status", sr.statusCode,
				"latency_ms", float64(latency.Nanoseconds())/1e6,
				"bytes_out", sr.bytesOut,
			)
		})
	}
}

// GetLogger はコンテキストから slog.Logger を取得します。
// ミドルウェアを通っていないコンテキスト (cronトリガーなど) ではデフォルトロガーを返します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger はロガーを格納した新しいコンテキストを返します。
// HTTP以外の起動経路 (cronジョブ) でジョブ単位のロガーを伝搬するのに使います。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}
