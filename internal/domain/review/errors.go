package review

import (
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

var (
	ErrInvalidTitle  = apperrors.New(apperrors.ErrCodeInvalidParams, "Review title must be between 1 and 120 characters")
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "Rating star must be between 1 and 5")
	ErrPageNotFound  = apperrors.New(apperrors.ErrCodePageNotFound, "No reviews found")
)
