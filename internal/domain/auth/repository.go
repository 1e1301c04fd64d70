package auth

import (
	"context"
)

// Repository Refresh Token仓储
type Repository interface {
	Create(ctx context.Context, token *RefreshToken) error

	// FindByJTI 不存在返回ErrTokenNotFound
	FindByJTI(ctx context.Context, jti string) (*RefreshToken, error)

	// Revoke 吊销未吊销的记录，返回本次是否真正发生了吊销
	// 并发轮换同一个Token时只有一个调用会返回true
	Revoke(ctx context.Context, jti string) (bool, error)

	// RevokeAllForUser 吊销用户所有未吊销的Token，返回吊销数量
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
}
