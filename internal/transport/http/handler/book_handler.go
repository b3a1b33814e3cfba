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

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler { return &BookHandler{svc: svc} }

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.svc.List(c.Request.Context(),
		c.Query("genre"), c.Query("author"), c.Query("sort"))
	if err != nil {
		writeErr(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusOK, resp.List(len(books), books))
}

func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(b))
}

func (h *BookHandler) Create(c *gin.Context) {
	// 写操作的角色判定是显式调用，不是中间件链里的隐式拦截
	if !auth.Authorize(c.GetString(mdw.KeyRole), domain.RolePublisher, domain.RoleAdmin) {
		forbidden(c)
		return
	}
	var in service.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	b, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeErr(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusCreated, resp.OK(b))
}

func (h *BookHandler) Update(c *gin.Context) {
	if !auth.Authorize(c.GetString(mdw.KeyRole), domain.RolePublisher, domain.RoleAdmin) {
		forbidden(c)
		return
	}
	var p service.BookPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		writeErr(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(b))
}

func (h *BookHandler) Delete(c *gin.Context) {
	if !auth.Authorize(c.GetString(mdw.KeyRole), domain.RoleAdmin) {
		forbidden(c)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err, "Book not found")
		return
	}
	c.JSON(http.StatusOK, resp.OK(nil))
}
