package order

import (
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在(或不属于当前用户)
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found")

	// ErrEmptyOrder 订单至少包含一个明细
	ErrEmptyOrder = apperrors.New(apperrors.ErrCodeEmptyOrder, "Order must contain at least one item")

	// ErrInvalidQuantity 购买数量1-8
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be between 1 and 8")

	// ErrInvalidPrice 单价不能为负
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Price must not be negative")

	// ErrPriceMismatch 价格不一致，Details为*MismatchError
	ErrPriceMismatch = apperrors.New(apperrors.ErrCodePriceMismatch, "Price mismatch detected. The prices of some items have changed.")
)
