package discount

import (
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

var (
	// ErrOverlap 同一本书的折扣时间段重叠
	ErrOverlap = apperrors.New(apperrors.ErrCodeDiscountOverlap, "Discount period overlaps an existing discount")

	// ErrInvalidPeriod 结束日期必须晚于开始日期
	ErrInvalidPeriod = apperrors.New(apperrors.ErrCodeInvalidParams, "Discount end date must be after its start date")

	// ErrInvalidPrice 折后价必须大于0且低于原价
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Discount price must be positive and below the book price")
)
