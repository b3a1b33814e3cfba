package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-bookshelf-api/internal/core/auth"
	"go-bookshelf-api/internal/transport/http/handler"
	mdw "go-bookshelf-api/internal/transport/http/middleware"
)

// NewAPIEngine 用户端路由：/api/v1 下的认证与书目 CRUD。
// 读书目无需登录；写操作进鉴权分组，角色在 handler 内显式判定
func NewAPIEngine(l *zap.Logger, authH *handler.AuthHandler, bookH *handler.BookHandler, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/auth/logout", authH.Logout)

	api.GET("/books", bookH.List)
	api.GET("/books/:id", bookH.Get)

	protected := api.Group("")
	protected.Use(mdw.AuthJWT(jwter))

	protected.GET("/auth/me", authH.Me)
	protected.POST("/books", bookH.Create)
	protected.PUT("/books/:id", bookH.Update)
	protected.DELETE("/books/:id", bookH.Delete)

	return r
}
