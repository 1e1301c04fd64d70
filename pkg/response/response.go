package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/pagination"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，0表示成功
// 2. Message是用户友好的提示信息
// 3. Data是业务数据；失败时携带AppError.Details（如价格不一致明细）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	summary, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 内部错误只进日志
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().
			Err(err).
			Int("code", appErr.Code).
			Str("path", c.FullPath()).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    appErr.Details,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// =========================================
// 分页响应结构
// =========================================

// PageMeta 分页元信息
type PageMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

// PageData 分页数据封装
type PageData struct {
	Data interface{} `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, size int) *PageData {
	return &PageData{
		Data: list,
		Meta: PageMeta{
			Total:      total,
			TotalPages: pagination.TotalPages(total, size),
			Page:       page,
			Size:       size,
		},
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, size int) {
	Success(c, NewPageData(list, total, page, size))
}
