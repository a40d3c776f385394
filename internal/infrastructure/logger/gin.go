package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GinOption tunes GinMiddleware
type GinOption func(*ginOptions)

type ginOptions struct {
	quietPrefixes []string
}

// WithQuietPaths logs successful requests under these path prefixes at
// debug, keeping probes and the swagger UI out of the info stream.
func WithQuietPaths(prefixes ...string) GinOption {
	return func(o *ginOptions) {
		o.quietPrefixes = append(o.quietPrefixes, prefixes...)
	}
}

// GinMiddleware puts a request logger tagged with the request id, method and
// path into the request context, then logs the outcome of the request.
// RequestID must run before it.
func GinMiddleware(base *zap.Logger, opts ...GinOption) gin.HandlerFunc {
	var o ginOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		ctx, reqLogger := WithRequestID(req.Context(), base, c.GetString("request_id"))
		reqLogger = reqLogger.With(zap.String("method", req.Method), zap.String("path", req.URL.Path))
		c.Request = req.WithContext(WithContext(ctx, reqLogger))

		c.Next()

		status := c.Writer.Status()
		level := levelForStatus(status)
		if level == zapcore.InfoLevel && o.quiet(req.URL.Path) {
			level = zapcore.DebugLevel
		}
		ce := reqLogger.Check(level, "HTTP Request")
		if ce == nil {
			return
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if req.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", req.URL.RawQuery))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		ce.Write(fields...)
	}
}

func (o ginOptions) quiet(path string) bool {
	for _, prefix := range o.quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Recovery turns a panic into a logged error and a 500 envelope
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			requestID := c.GetString("request_id")
			For(c.Request.Context(), base).Error("Panic recovered",
				zap.String("request_id", requestID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", recovered),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":       "ERR_INTERNAL",
					"message":    "An internal error occurred",
					"request_id": requestID,
				},
			})
		}()
		c.Next()
	}
}
