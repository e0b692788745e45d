package http

import (
	"go.uber.org/zap"

	"go-weather/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called immediately after receiving an error response (error HTTP status)
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}

// ZapHTTPLogger writes outbound HTTP traffic to the application zap logger.
// Response bodies are only logged at debug level.
type ZapHTTPLogger struct {
	Name string
}

var _ HTTPLogger = (*ZapHTTPLogger)(nil)

func (l *ZapHTTPLogger) LogRequest(method, url string, headers map[string]string, body string) {
	log.Debug("Outbound request",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url))
}

func (l *ZapHTTPLogger) LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	log.Info("Outbound request finished",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
	log.Debug("Outbound response body", zap.String("client", l.Name), zap.String("body", responseBody))
}

func (l *ZapHTTPLogger) LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("Outbound request failed",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func (l *ZapHTTPLogger) LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int) {
	log.Warn("Retrying outbound request",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}
