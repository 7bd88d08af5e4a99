package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// HeaderRequestID 请求ID响应头
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// slowRequestThreshold 超过该耗时的请求以Warn级别记录
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 生成请求ID(上游已传入时沿用)，写入响应头
// 2. 请求级Logger放入Context，下游通过logger.FromContext获取
// 3. 请求结束后记录方法、路由、状态码、耗时
func Logger(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(contextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		ctx := c.Request.Context()
		l := base.With("request_id", requestID)
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			l = l.With("trace_id", traceID)
		}
		c.Request = c.Request.WithContext(logger.WithContext(ctx, l))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			l.Error("请求处理失败", attrs...)
		case latency > slowRequestThreshold:
			l.Warn("慢请求", attrs...)
		default:
			l.Info("请求完成", attrs...)
		}
	}
}

// GetRequestID 当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
