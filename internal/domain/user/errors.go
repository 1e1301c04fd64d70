package user

import (
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

var (
	ErrUserNotFound   = apperrors.New(apperrors.ErrCodeUserNotFound, "User not found")
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "Email already registered")
	ErrInvalidEmail   = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid email address")
	ErrInvalidName    = apperrors.New(apperrors.ErrCodeInvalidParams, "First name and last name are required")

	// ErrWeakPassword bcrypt只使用前72字节，更长的密码会被截断
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword, "Password must be 8-72 characters and contain letters and digits")
)
