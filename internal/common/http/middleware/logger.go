package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/exp/slices"
)

// bodies above this size are logged truncated
const maxLoggedBody = 4 << 10

var (
	sensitiveHeaders = []string{"authorization", "cookie", "set-cookie", "x-api-key"}
	silentRoutes     = []string{"/api/health", "/metrics"}
)

// captureWriter tees the response body into buf while still writing it to the client.
type captureWriter struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - w.buf.Len(); room > 0 {
		w.buf.Write(b[:min(len(b), room)])
	}
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) Flush() {
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *captureWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (m *AppMiddleware) parseRequestBody(c echo.Context) []byte {
	req := c.Request()
	if req.Body == nil {
		return nil
	}

	body, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))

	return truncate(body)
}

func (m *AppMiddleware) parseRequestHeader(c echo.Context) []byte {
	headers := make(map[string][]string, len(c.Request().Header))
	for k, vals := range c.Request().Header {
		if slices.Contains(sensitiveHeaders, strings.ToLower(k)) {
			vals = []string{"*****"}
		}
		headers[k] = vals
	}

	b, _ := json.Marshal(headers)
	return b
}

func truncate(b []byte) []byte {
	if len(b) <= maxLoggedBody {
		return b
	}
	return append(b[:maxLoggedBody:maxLoggedBody], "...(truncated)"...)
}

// Logger writes one access log line per request, at a level that follows the response status.
func (m *AppMiddleware) Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if slices.Contains(silentRoutes, c.Path()) {
				return next(c)
			}

			start := time.Now()
			reqBody := m.parseRequestBody(c)
			reqHeader := m.parseRequestHeader(c)

			resBody := new(bytes.Buffer)
			res := c.Response()
			res.Writer = &captureWriter{ResponseWriter: res.Writer, buf: resBody}

			if err := next(c); err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			req := c.Request()

			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("url_path", req.URL.String()),
				logger.String("route", c.Path()),
				logger.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				logger.String("request_body", string(reqBody)),
				logger.String("request_header", string(reqHeader)),
				logger.Int("status", res.Status),
				logger.String("response", resBody.String()),
				logger.Duration("latency", latency),
			}

			accessLog(res.Status)(req.Context(), fmt.Sprintf("%d %s %s %v", res.Status, req.Method, req.URL.Path, latency), fields...)

			return nil
		}
	}
}

func accessLog(status int) func(ctx context.Context, msg string, fields ...logger.Field) {
	switch {
	case status >= http.StatusInternalServerError:
		return logger.Error
	case status >= http.StatusBadRequest:
		return logger.Warn
	default:
		return logger.Info
	}
}
