package user

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

// Service 用户领域服务
type Service interface {
	// Register 注册用户（密码bcrypt加密后保存）
	Register(ctx context.Context, firstName, lastName, email, password string, admin bool) (*User, error)

	// Authenticate 校验邮箱和密码
	// 用户不存在和密码错误返回同一个错误，不泄露账号是否存在
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID 查询用户
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
	cost int
	// dummyHash 用户不存在时也做一次bcrypt比较，使两种失败的耗时接近
	dummyHash []byte
}

// Option 服务可选项
type Option func(*service)

// WithBcryptCost 设置bcrypt cost（测试中使用bcrypt.MinCost）
func WithBcryptCost(cost int) Option {
	return func(s *service) { s.cost = cost }
}

// NewService 创建用户领域服务
func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bookworm-dummy-password"), s.cost)
	return s
}

func (s *service) Register(ctx context.Context, firstName, lastName, email, password string, admin bool) (*User, error) {
	if !isValidEmail(NormalizeEmail(email)) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	u := NewUser(firstName, lastName, email, "", admin)
	if u.FirstName == "" || u.LastName == "" {
		return nil, ErrInvalidName
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}
	u.Password = string(hashed)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidCredentials
		}
		// 哈希格式损坏等情况同样按认证失败处理，原因进日志
		return nil, apperrors.ErrInvalidCredentials.WithCause(err)
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// validatePasswordStrength 8-72位，同时包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
