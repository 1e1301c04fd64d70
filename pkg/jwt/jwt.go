package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xiebiao/bookworm/pkg/clock"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

const (
	issuer = "bookworm"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Manager JWT管理器
// 设计说明：
// 1. 双Token机制：Access Token（默认5分钟）+ Refresh Token（默认30分钟）
// 2. Refresh Token携带jti，服务端按jti持久化记录，用于轮换和吊销
// 3. 两种Token通过type声明区分，防止互相冒用
type Manager struct {
	secret             []byte
	method             jwt.SigningMethod
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	clock              clock.Clock
}

// Option Manager可选配置
type Option func(*Manager)

// WithClock 注入时钟（测试中固定签发/校验时间）
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// NewManager 创建JWT管理器
// algorithm 支持 HS256/HS384/HS512，未知值回退到HS256
func NewManager(secret, algorithm string, accessTokenExpire, refreshTokenExpire time.Duration, opts ...Option) *Manager {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		method = jwt.SigningMethodHS256
	}
	m := &Manager{
		secret:             []byte(secret),
		method:             method,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
		clock:              clock.System,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AccessClaims Access Token声明
// sub为用户邮箱
type AccessClaims struct {
	UserID    uint   `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Admin     bool   `json:"admin"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// RefreshClaims Refresh Token声明
// sub为用户邮箱，jti为持久化记录的唯一标识
type RefreshClaims struct {
	UserID uint   `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// Subject 生成Access Token所需的用户信息
type Subject struct {
	UserID    uint
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// AccessTokenExpire Access Token有效期
func (m *Manager) AccessTokenExpire() time.Duration { return m.accessTokenExpire }

// RefreshTokenExpire Refresh Token有效期
func (m *Manager) RefreshTokenExpire() time.Duration { return m.refreshTokenExpire }

// GenerateAccessToken 签发Access Token
func (m *Manager) GenerateAccessToken(s Subject) (string, error) {
	now := m.clock.Now()
	claims := AccessClaims{
		UserID:    s.UserID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Admin:     s.Admin,
		Type:      TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenExpire)),
		},
	}
	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

// GenerateRefreshToken 签发Refresh Token，返回Token和过期时间
func (m *Manager) GenerateRefreshToken(userID uint, email, jti string) (string, time.Time, error) {
	now := m.clock.Now()
	expiresAt := now.Add(m.refreshTokenExpire)
	claims := RefreshClaims{
		UserID: userID,
		Type:   TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign refresh token")
	}
	return signed, expiresAt, nil
}

// ParseAccessToken 解析并验证Access Token
func (m *Manager) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// ParseRefreshToken 解析并验证Refresh Token（签名、过期、jti）
func (m *Manager) ParseRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeRefresh || claims.ID == "" || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
		jwt.WithExpirationRequired(),
	)
	// 过期和签名错误对外是同一个错误码
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if !token.Valid {
		return apperrors.ErrInvalidToken
	}
	return nil
}
