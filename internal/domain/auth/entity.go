package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// RefreshToken 持久化的Refresh Token记录
//
// 生命周期: issued -> revoked | expired，两者都是终态。
// 记录不删除，保留用于审计和重放检测。
// 只保存Token的SHA-256哈希，数据库泄露时无法直接使用。
type RefreshToken struct {
	ID        uint
	UserID    uint
	JTI       string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

// NewRefreshToken 创建记录
func NewRefreshToken(userID uint, jti, token string, createdAt, expiresAt time.Time) *RefreshToken {
	return &RefreshToken{
		UserID:    userID,
		JTI:       jti,
		TokenHash: HashToken(token),
		CreatedAt: createdAt.UTC(),
		ExpiresAt: expiresAt.UTC(),
	}
}

// HashToken Token的十六进制SHA-256
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Matches 常量时间比较Token哈希
func (t *RefreshToken) Matches(token string) bool {
	return subtle.ConstantTimeCompare([]byte(t.TokenHash), []byte(HashToken(token))) == 1
}

// IsUsable 未吊销且未过期
func (t *RefreshToken) IsUsable(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
