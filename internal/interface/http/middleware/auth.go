package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/jwt"
	"github.com/xiebiao/bookworm/pkg/response"
)

const (
	// AccessTokenCookie 登录后下发的Access Token Cookie
	AccessTokenCookie = "access_token"

	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxAdmin  = "admin"
)

// AuthMiddleware JWT认证中间件
// Token来源依次为 Authorization: Bearer <token> 和 access_token Cookie
type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// RequireAuth 要求登录
//
//	orders := r.Group("/orders", authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}

		// 过期、签名错误、把Refresh Token当Access Token用，统一401
		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Subject)
		c.Set(ctxAdmin, claims.Admin)
		c.Next()
	}
}

// RequireAdmin 要求管理员，必须放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Error(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// IsAdmin 当前用户是否为管理员
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxAdmin)
}
