package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-bookshelf-api/internal/core/auth"
	"go-bookshelf-api/internal/transport/http/handler"
	mdw "go-bookshelf-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端路由：/admin/v1，整组要求登录，
// 各接口内再显式要求 admin 角色
func NewAdminEngine(l *zap.Logger, adminH *handler.AdminHandler, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter))

	admin.GET("/users", adminH.ListUsers)
	admin.PUT("/users/:id/role", adminH.UpdateRole)
	admin.POST("/users/:id/ban", adminH.BanUser)

	return r
}
