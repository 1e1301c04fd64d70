package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookworm/internal/domain/auth"
	"github.com/xiebiao/bookworm/internal/domain/user"
	"github.com/xiebiao/bookworm/pkg/clock"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/jwt"
)

type memTokens struct {
	byJTI map[string]*auth.RefreshToken
}

func newMemTokens() *memTokens { return &memTokens{byJTI: map[string]*auth.RefreshToken{}} }

func (r *memTokens) Create(_ context.Context, t *auth.RefreshToken) error {
	t.ID = uint(len(r.byJTI) + 1)
	r.byJTI[t.JTI] = t
	return nil
}

func (r *memTokens) FindByJTI(_ context.Context, jti string) (*auth.RefreshToken, error) {
	t, ok := r.byJTI[jti]
	if !ok {
		return nil, auth.ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTokens) Revoke(_ context.Context, jti string) (bool, error) {
	t, ok := r.byJTI[jti]
	if !ok || t.Revoked {
		return false, nil
	}
	t.Revoked = true
	return true, nil
}

func (r *memTokens) RevokeAllForUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, t := range r.byJTI {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	byID map[uint]*user.User
}

func (f *fakeUsers) Register(context.Context, string, string, string, string, bool) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) Authenticate(_ context.Context, email, password string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Email == email && password == "secret123" {
			return u, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type fixture struct {
	svc    *TokenService
	tokens *memTokens
	users  *fakeUsers
	now    *time.Time
}

func newFixture() *fixture {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := &fixture{
		tokens: newMemTokens(),
		users: &fakeUsers{byID: map[uint]*user.User{
			1: {ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Admin: true},
		}},
		now: &now,
	}
	clk := clock.Func(func() time.Time { return *f.now })
	manager := jwt.NewManager("test-secret", "HS256", 5*time.Minute, 30*time.Minute, jwt.WithClock(clk))
	f.svc = NewTokenService(f.users, f.tokens, manager, clk)
	return f
}

func (f *fixture) advance(d time.Duration) { *f.now = f.now.Add(d) }

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	pair, err := f.svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, TokenTypeBearer, pair.TokenType)
	assert.Equal(t, 5*time.Minute, pair.AccessExpiresIn)
	assert.Equal(t, f.now.Add(30*time.Minute), pair.RefreshExpiresAt)
	require.Len(t, f.tokens.byJTI, 1)
	for _, stored := range f.tokens.byJTI {
		assert.NotEqual(t, pair.RefreshToken, stored.TokenHash)
		assert.True(t, stored.Matches(pair.RefreshToken))
	}

	t.Run("密码错误", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("轮换后旧Token不可再用", func(t *testing.T) {
		f := newFixture()
		first, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)

		f.advance(time.Minute)
		second, err := f.svc.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
		assert.Len(t, f.tokens.byJTI, 2)

		_, err = f.svc.Refresh(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRejected)

		_, err = f.svc.Refresh(ctx, second.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("缺少Token", func(t *testing.T) {
		_, err := newFixture().svc.Refresh(ctx, "")
		assert.ErrorIs(t, err, auth.ErrMissingRefreshToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := newFixture().svc.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("Access Token不能用来刷新", func(t *testing.T) {
		f := newFixture()
		pair, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		_, err = f.svc.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("过期", func(t *testing.T) {
		f := newFixture()
		pair, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		f.advance(31 * time.Minute)
		_, err = f.svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("记录不存在", func(t *testing.T) {
		f := newFixture()
		pair, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		f.tokens.byJTI = map[string]*auth.RefreshToken{}
		_, err = f.svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRejected)
	})

	t.Run("用户已删除时旧Token仍被吊销", func(t *testing.T) {
		f := newFixture()
		pair, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		delete(f.users.byID, 1)

		_, err = f.svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
		for _, stored := range f.tokens.byJTI {
			assert.True(t, stored.Revoked)
		}
	})
}

func TestLogoutAndRevokeAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	a, err := f.svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	f.svc.Logout(ctx, a.RefreshToken)
	_, err = f.svc.Refresh(ctx, a.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRejected)

	// 重复登出和无效Token都静默成功
	f.svc.Logout(ctx, a.RefreshToken)
	f.svc.Logout(ctx, "garbage")
	f.svc.Logout(ctx, "")

	n, err := f.svc.RevokeAllUserTokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
