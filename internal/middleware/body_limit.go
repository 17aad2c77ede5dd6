package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultBodyLimitMB   = 1
	defaultUploadLimitMB = 10
)

// BodyLimitMiddleware 限制 JSON 接口的请求体大小
func BodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultBodyLimitMB
	}
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小。
// base64 编码的请求体比原始内容大约三分之一，上限相应放宽。
func UploadBodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultUploadLimitMB
	}
	rawBytes := int64(maxSizeMB) * 1024 * 1024

	return func(c *gin.Context) {
		maxBytes := rawBytes
		if IsBase64Body(c.Request) {
			maxBytes = rawBytes/3*4 + 4
		}

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File too large (max %dMB).", maxSizeMB)})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// IsBase64Body 请求头声明请求体为 base64 编码；上限放宽与解码共用这一判断
func IsBase64Body(r *http.Request) bool {
	for _, name := range []string{"Content-Transfer-Encoding", "X-Body-Encoding"} {
		if strings.EqualFold(strings.TrimSpace(r.Header.Get(name)), "base64") {
			return true
		}
	}
	return false
}
