package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bookshelf-api/internal/core/auth"
	"go-bookshelf-api/internal/domain"
	"go-bookshelf-api/internal/service"
	mdw "go-bookshelf-api/internal/transport/http/middleware"
	resp "go-bookshelf-api/internal/transport/http/response"
)

// AdminHandler 管理端用户接口（仅 admin）
type AdminHandler struct {
	svc *service.UserService
}

func NewAdminHandler(svc *service.UserService) *AdminHandler { return &AdminHandler{svc: svc} }

type userListQ struct {
	Offset      int    `form:"offset,default=0"`
	Limit       int    `form:"limit,default=20"`
	Q           string `form:"q"`            // 按 email/name 模糊搜
	WithDeleted bool   `form:"with_deleted"` // 是否包含已封禁
}

type userRow struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if !auth.Authorize(c.GetString(mdw.KeyRole), domain.RoleAdmin) {
		forbidden(c)
		return
	}
	var in userListQ
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	users, total, err := h.svc.List(c.Request.Context(), in.Q, in.Offset, in.Limit, in.WithDeleted)
	if err != nil {
		writeErr(c, err, "User not found")
		return
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"total": total, "items": rows}))
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	if !auth.Authorize(c.GetString(mdw.KeyRole), domain.RoleAdmin) {
		forbidden(c)
		return
	}
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	u, err := h.svc.UpdateRole(c.Request.Context(), c.Param("id"), in.Role)
	if err != nil {
		writeErr(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	if !auth.Authorize(c.GetString(mdw.KeyRole), domain.RoleAdmin) {
		forbidden(c)
		return
	}
	if err := h.svc.Ban(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}
