package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，HTTP状态码由HTTPStatus()统一推导
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
// 4. Details是结构化的附加信息（如价格不一致的明细），会原样返回给客户端
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`

	origin *AppError // WithDetails/WithMessage副本指向的预定义错误
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrBookNotFound) 对WithMessage/WithDetails生成的副本同样成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.root() == t.root()
}

func (e *AppError) root() *AppError {
	if e.origin != nil {
		return e.origin
	}
	return e
}

// WithDetails 返回携带结构化信息的副本（预定义错误是共享变量，不能原地修改）
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	cp.origin = e.root()
	return &cp
}

// WithMessage 返回替换了提示信息的副本
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	cp.origin = e.root()
	return &cp
}

// WithCause 返回附带内部原因的副本（原因只记录日志）
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	cp.origin = e.root()
	return &cp
}

// HTTPStatus 根据业务错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == ErrCodeForbidden:
		return http.StatusForbidden
	case e.Code == ErrCodeBindError:
		return http.StatusUnprocessableEntity
	case e.Code == ErrCodeDuplicateEntry || e.Code == ErrCodeDiscountOverlap || e.Code == ErrCodeEmailDuplicate:
		return http.StatusConflict
	case e.Code == ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case e.Code >= 40100 && e.Code < 40200:
		return http.StatusUnauthorized
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code >= 40000 && e.Code < 41000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效或过期，不区分原因
	ErrCodeInvalidCredentials = 40103 // 账号或密码错误
	ErrCodeForbidden          = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound     = 40401 // 用户不存在
	ErrCodeBookNotFound     = 40402 // 图书不存在
	ErrCodeOrderNotFound    = 40403 // 订单不存在
	ErrCodeAuthorNotFound   = 40405 // 作者不存在
	ErrCodeCategoryNotFound = 40406 // 分类不存在
	ErrCodePageNotFound     = 40407 // 页码超出范围

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError   = 40000 // 业务错误(通用)
	ErrCodeEmailDuplicate  = 40003 // 邮箱已存在
	ErrCodeWeakPassword    = 40005 // 密码强度不足
	ErrCodeDuplicateEntry  = 40009 // 重复记录(通用)
	ErrCodePriceMismatch   = 40010 // 客户端价格与当前价格不一致
	ErrCodeEmptyOrder      = 40011 // 空订单
	ErrCodeDiscountOverlap = 40012 // 折扣时间段重叠

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败

	// 限流（42900）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache error")

	// 认证授权
	ErrUnauthorized       = New(ErrCodeUnauthorized, "Could not validate credentials")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Could not validate credentials")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Incorrect email or password")
	ErrForbidden          = New(ErrCodeForbidden, "Not enough permissions")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "Resource not found")
	ErrPageNotFound = New(ErrCodePageNotFound, "Page out of range")

	// 参数错误
	ErrInvalidParams   = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError       = New(ErrCodeBindError, "Malformed request")
	ErrDuplicateEntry  = New(ErrCodeDuplicateEntry, "Duplicate entry")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
