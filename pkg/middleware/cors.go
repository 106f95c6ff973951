package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/roombook/pkg/httpclient"
)

// CORS は許可したオリジンからのクロスオリジンリクエストを受け付けるGinミドルウェアを返す。
// 予約APIが使うメソッドのみを許可し、リクエストIDヘッダーをブラウザへ公開する。
// プリフライト（OPTIONS）はオリジンに関わらず204で終了する。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, "+httpclient.HeaderRequestID)
			c.Header("Access-Control-Expose-Headers", httpclient.HeaderRequestID)
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
