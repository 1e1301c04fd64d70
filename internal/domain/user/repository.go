package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	// Create 创建用户，邮箱重复返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)
}
