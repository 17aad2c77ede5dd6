package middleware

import "github.com/gin-gonic/gin"

// StaticCacheMiddleware 为本地存储的谜题图片添加 Cache-Control 头。
// 图片路径带毫秒时间戳且不会被覆盖，可以长期缓存。
func StaticCacheMiddleware(cacheControl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cacheControl != "" {
			c.Header("Cache-Control", cacheControl)
		}
		c.Next()
	}
}
