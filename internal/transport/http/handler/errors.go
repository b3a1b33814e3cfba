package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bookshelf-api/internal/domain"
	resp "go-bookshelf-api/internal/transport/http/response"
)

// writeErr 服务层错误到 HTTP 状态 + 信封的唯一映射点。
// 唯一冲突沿用原 API 的 400（而非 409），保持客户端兼容。
func writeErr(c *gin.Context, err error, notFoundMsg string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, resp.Fail(ve.Messages))
		return
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusBadRequest, resp.Fail(ce.Msg))
		return
	}
	switch {
	case errors.Is(err, domain.ErrIsbnImmutable):
		c.JSON(http.StatusBadRequest, resp.Fail(domain.ErrIsbnImmutable.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, resp.Fail(notFoundMsg))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, resp.Fail(domain.ErrInvalidCredentials.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, resp.Fail("Server Error"))
	}
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("Forbidden"))
}
