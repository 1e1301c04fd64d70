package auth

import (
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

var (
	// ErrTokenNotFound jti没有对应记录
	ErrTokenNotFound = apperrors.New(apperrors.ErrCodeInvalidToken, "Refresh token invalid, revoked, or expired")

	ErrMissingRefreshToken = apperrors.New(apperrors.ErrCodeInvalidParams, "Missing refresh token")
	ErrInvalidRefreshToken = apperrors.New(apperrors.ErrCodeInvalidToken, "Invalid refresh token")

	// ErrRefreshTokenRejected 记录不存在、哈希不匹配、已吊销或已过期，统一返回
	ErrRefreshTokenRejected = apperrors.New(apperrors.ErrCodeInvalidToken, "Refresh token invalid, revoked, or expired")

	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUnauthorized, "User not found")
)
