package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/response"
)

// pathID 解析路径中的正整数ID，失败时直接写400响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("Invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// bindError 参数绑定/校验失败（422）
func bindError(c *gin.Context, err error) {
	response.Error(c, apperrors.ErrBindError.WithMessage("Malformed request: %s", err.Error()))
}
