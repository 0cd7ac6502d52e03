package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-admin/internal/transport/http/ez"
	"restaurant-admin/internal/transport/http/flash"
)

// Errors 统一处理 handler 记下的错误：
// 4xx 写 flash 后回到来源页；其余记日志并渲染错误页。
func Errors(l *zap.Logger, fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.ByType(gin.ErrorTypePrivate | gin.ErrorTypePublic).Last()
		if last == nil || c.Writer.Written() {
			return
		}
		err := last.Err
		status := ez.Status(err)
		msg := ez.Message(err)
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(KeyRequestID)),
			zap.Error(err),
		}

		if status < http.StatusInternalServerError {
			l.Warn("request rejected", fields...)
			flash.Add(c, flash.Error, msg)
			c.Redirect(http.StatusFound, ez.BackURL(c, fallback))
			return
		}
		l.Error("request failed", fields...)
		ez.HTML(c, status, "admin/error", gin.H{"status": status, "message": msg})
	}
}
