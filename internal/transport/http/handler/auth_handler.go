package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bookshelf-api/internal/service"
	mdw "go-bookshelf-api/internal/transport/http/middleware"
	resp "go-bookshelf-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type registerIn struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// tokenOut data 同时携带令牌与公开用户视图
type tokenOut struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	tok, u, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		writeErr(c, err, "User not found")
		return
	}
	c.JSON(http.StatusCreated, resp.OK(tokenOut{Token: tok, User: u}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Please provide email and password"))
		return
	}
	tok, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeErr(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(tokenOut{Token: tok, User: u}))
}

// Logout 无状态令牌模型下服务端无事可做，端点只为对称性存在：
// 客户端收到成功信封后丢弃本地令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(nil))
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		writeErr(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}
