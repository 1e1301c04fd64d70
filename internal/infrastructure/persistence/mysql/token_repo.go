package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/internal/domain/auth"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository 创建Refresh Token仓储
func NewRefreshTokenRepository(db *gorm.DB) auth.Repository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, t *auth.RefreshToken) error {
	model := &RefreshTokenModel{
		UserID:    t.UserID,
		JTI:       t.JTI,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存Refresh Token失败")
	}
	t.ID = model.ID
	return nil
}

func (r *refreshTokenRepository) FindByJTI(ctx context.Context, jti string) (*auth.RefreshToken, error) {
	var model RefreshTokenModel
	if err := dbFrom(ctx, r.db).Where("jti = ?", jti).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, auth.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "查询Refresh Token失败")
	}
	return &auth.RefreshToken{
		ID:        model.ID,
		UserID:    model.UserID,
		JTI:       model.JTI,
		TokenHash: model.TokenHash,
		CreatedAt: model.CreatedAt.UTC(),
		ExpiresAt: model.ExpiresAt.UTC(),
		Revoked:   model.Revoked,
	}, nil
}

// Revoke 条件更新：只有revoked=false的行会被修改
// 两个请求同时轮换同一个Token时，只有一个能拿到RowsAffected=1
func (r *refreshTokenRepository) Revoke(ctx context.Context, jti string) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&RefreshTokenModel{}).
		Where("jti = ? AND revoked = ?", jti, false).
		Update("revoked", true)
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "吊销Refresh Token失败")
	}
	return result.RowsAffected == 1, nil
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&RefreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "吊销用户Token失败")
	}
	return result.RowsAffected, nil
}
