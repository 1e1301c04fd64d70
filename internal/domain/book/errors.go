package book

import (
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在，使用时通过WithMessage带上ID
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	ErrAuthorNotFound   = apperrors.New(apperrors.ErrCodeAuthorNotFound, "Author not found")
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "Category not found")

	// ErrPageNotFound 页码超出范围(page>1且没有数据)
	ErrPageNotFound = apperrors.New(apperrors.ErrCodePageNotFound, "No books found")

	ErrInvalidFilter = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid book filter")
	ErrInvalidTitle  = apperrors.New(apperrors.ErrCodeInvalidParams, "Book title is required")
	ErrInvalidPrice  = apperrors.New(apperrors.ErrCodeInvalidParams, "Book price must be positive with at most 2 decimal places")
	ErrInvalidName   = apperrors.New(apperrors.ErrCodeInvalidParams, "Name is required")
)

// NotFound 返回带ID的图书不存在错误
func NotFound(id uint) error {
	return ErrBookNotFound.WithMessage("Book not found with id %d", id)
}
