package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-bookshelf-api/internal/core/auth"
	resp "go-bookshelf-api/internal/transport/http/response"
)

// 上下文键，供 handler 显式取身份后调用 auth.Authorize
const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 只负责解析 Bearer 令牌并注入身份；角色判定由各 handler
// 以普通函数调用（auth.Authorize）完成，不在中间件里隐式拦截
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("Not authorized to access this route"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("Not authorized to access this route"))
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
