package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

type memRepo struct {
	byID map[uint]*User
	next uint
}

func newMemRepo() *memRepo { return &memRepo{byID: map[uint]*User{}} }

func (r *memRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailDuplicate
		}
	}
	r.next++
	u.ID = r.next
	r.byID[u.ID] = u
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), WithBcryptCost(bcrypt.MinCost))

	u, err := svc.Register(ctx, "Ada", "Lovelace", " Ada@Example.com ", "secret123", false)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.Password)

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(ctx, "A", "B", "ada@example.com", "secret123", false)
		assert.ErrorIs(t, err, ErrEmailDuplicate)
	})

	t.Run("弱密码", func(t *testing.T) {
		_, err := svc.Register(ctx, "A", "B", "b@example.com", "short1", false)
		assert.ErrorIs(t, err, ErrWeakPassword)
		_, err = svc.Register(ctx, "A", "B", "b@example.com", "onlyletters", false)
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("登录成功，邮箱大小写不敏感", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "ADA@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("密码错误和用户不存在返回同一错误", func(t *testing.T) {
		_, errPwd := svc.Authenticate(ctx, "ada@example.com", "wrong123")
		_, errUser := svc.Authenticate(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, errPwd, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errUser, apperrors.ErrInvalidCredentials)
		assert.Equal(t, apperrors.GetAppError(errPwd).Message, apperrors.GetAppError(errUser).Message)
	})
}
