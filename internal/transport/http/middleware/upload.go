package middleware

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-admin/internal/transport/http/ez"
)

const keyUploadFile = "upload.file"

// SingleFile 从 multipart 表单里取出字段 field 的单个文件，没有文件不算错
func SingleFile(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(field)
		switch {
		case err == nil:
			c.Set(keyUploadFile, fh)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				_ = c.Error(ez.BadRequest("request body too large"))
			} else {
				_ = c.Error(ez.BadRequest("invalid multipart form"))
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// UploadedFile SingleFile 取到的文件；没有则为 nil
func UploadedFile(c *gin.Context) *multipart.FileHeader {
	if v, ok := c.Get(keyUploadFile); ok {
		if fh, ok := v.(*multipart.FileHeader); ok {
			return fh
		}
	}
	return nil
}
