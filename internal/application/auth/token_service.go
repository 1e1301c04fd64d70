// Package auth 登录、Refresh Token轮换与吊销
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/bookworm/internal/domain/auth"
	"github.com/xiebiao/bookworm/internal/domain/user"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/jwt"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/metrics"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

const (
	tracerName = "bookworm/application/auth"

	TokenTypeBearer = "bearer"
)

// TokenPair 登录/刷新返回的Token对
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string
	AccessExpiresIn  time.Duration
	RefreshExpiresAt time.Time
}

// TokenService Token签发与轮换
//
// Refresh Token一次性使用：每次刷新先条件吊销旧记录，再签发新的一对。
// 吊销不放在事务里，后续步骤失败旧Token也已失效，重放同一个Token必然被拒绝。
type TokenService struct {
	users  user.Service
	tokens auth.Repository
	jwt    *jwt.Manager
	clock  clock.Clock
	newJTI func() string
}

// NewTokenService 创建Token服务
func NewTokenService(users user.Service, tokens auth.Repository, jwtManager *jwt.Manager, clk clock.Clock) *TokenService {
	return &TokenService{
		users:  users,
		tokens: tokens,
		jwt:    jwtManager,
		clock:  clk,
		newJTI: uuid.NewString,
	}
}

// Login 校验邮箱密码并签发Token对
func (s *TokenService) Login(ctx context.Context, email, password string) (pair *TokenPair, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Login")
	defer func() {
		tracing.End(span, err)
		record("login", err)
	}()

	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	pair, err = s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Uint("user_id", u.ID).Msg("user logged in")
	return pair, nil
}

// Refresh 轮换Refresh Token
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (pair *TokenPair, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Refresh")
	defer func() {
		tracing.End(span, err)
		record("refresh", err)
	}()

	if refreshToken == "" {
		return nil, auth.ErrMissingRefreshToken
	}
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken.WithCause(err)
	}

	stored, err := s.tokens.FindByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return nil, auth.ErrRefreshTokenRejected
		}
		return nil, err
	}
	if !stored.Matches(refreshToken) || !stored.IsUsable(s.clock.Now()) || stored.UserID != claims.UserID {
		return nil, auth.ErrRefreshTokenRejected
	}

	// 并发刷新同一个Token时只有一个请求能吊销成功
	ok, err := s.tokens.Revoke(ctx, stored.JTI)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Ctx(ctx).Warn().Uint("user_id", stored.UserID).Str("jti", stored.JTI).Msg("refresh token replay rejected")
		return nil, auth.ErrRefreshTokenRejected
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return s.issue(ctx, u)
}

// Logout 吊销Refresh Token，Token无效或已吊销时同样返回成功
func (s *TokenService) Logout(ctx context.Context, refreshToken string) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Logout")
	defer span.End()

	if refreshToken == "" {
		return
	}
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return
	}
	if _, err := s.tokens.Revoke(ctx, claims.ID); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("jti", claims.ID).Msg("revoke on logout failed")
		record("logout", err)
		return
	}
	record("logout", nil)
}

// RevokeAllUserTokens 吊销用户的全部Refresh Token（修改密码、账号异常时使用）
func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID uint) (n int64, err error) {
	defer func() { record("revoke_all", err) }()

	n, err = s.tokens.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	logger.Ctx(ctx).Info().Uint("user_id", userID).Int64("revoked", n).Msg("refresh tokens revoked")
	return n, nil
}

// issue 签发Access Token和Refresh Token，并持久化Refresh Token记录
func (s *TokenService) issue(ctx context.Context, u *user.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(jwt.Subject{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
	})
	if err != nil {
		return nil, err
	}

	jti := s.newJTI()
	refresh, expiresAt, err := s.jwt.GenerateRefreshToken(u.ID, u.Email, jti)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, auth.NewRefreshToken(u.ID, jti, refresh, s.clock.Now(), expiresAt)); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        TokenTypeBearer,
		AccessExpiresIn:  s.jwt.AccessTokenExpire(),
		RefreshExpiresAt: expiresAt,
	}, nil
}

func record(operation string, err error) {
	result := "success"
	switch {
	case errors.Is(err, auth.ErrRefreshTokenRejected):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.TokenOperationsTotal.WithLabelValues(operation, result).Inc()
}
