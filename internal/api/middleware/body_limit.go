package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haryan80/interventional-radiology-website/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 本服务最大的请求体是管理端提交的讲者简历文本，1MB 上限足够
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		// MaxBytesReader 超限时错误只出现在 bind 阶段，从 Errors 里捞
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
