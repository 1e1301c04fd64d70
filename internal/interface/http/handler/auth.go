package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/bookworm/internal/application/auth"
	"github.com/xiebiao/bookworm/internal/interface/http/dto"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
	"github.com/xiebiao/bookworm/pkg/response"
)

// RefreshTokenCookie Refresh Token的Cookie名
const RefreshTokenCookie = "refresh_token"

// AuthHandler 登录、刷新、登出
// Token同时写入HttpOnly Cookie和响应体，浏览器和API客户端都可以使用
type AuthHandler struct {
	tokens       *appauth.TokenService
	cookieSecure bool
}

func NewAuthHandler(tokens *appauth.TokenService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{tokens: tokens, cookieSecure: cookieSecure}
}

// Login 登录
// @Summary      登录
// @Description  表单提交，username为邮箱
// @Tags         认证
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "邮箱"
// @Param        password formData string true "密码"
// @Success      200 {object} response.Response{data=dto.TokenResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Failure      429 {object} response.Response "请求过于频繁"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}

	pair, err := h.tokens.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.writeTokens(c, pair)
}

// Refresh 轮换Refresh Token
// @Summary      刷新Token
// @Description  优先读取refresh_token Cookie，其次读取JSON body；旧Token立即失效
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest false "Refresh Token"
// @Success      200 {object} response.Response{data=dto.TokenResponse}
// @Failure      400 {object} response.Response "缺少Refresh Token"
// @Failure      401 {object} response.Response "Refresh Token无效、已吊销或已过期"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	pair, err := h.tokens.Refresh(c.Request.Context(), refreshTokenFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.writeTokens(c, pair)
}

// Logout 登出，清除Cookie并吊销Refresh Token
// @Summary      登出
// @Tags         认证
// @Produce      json
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.tokens.Logout(c.Request.Context(), refreshTokenFrom(c))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", h.cookieSecure, true)
	response.Success(c, dto.MessageResponse{Message: "Successfully logged out"})
}

// RevokeAll 吊销当前用户的全部Refresh Token
// @Summary      吊销全部会话
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.RevokeAllResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /auth/revoke-all [post]
func (h *AuthHandler) RevokeAll(c *gin.Context) {
	n, err := h.tokens.RevokeAllUserTokens(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RevokeAllResponse{Revoked: n})
}

func (h *AuthHandler) writeTokens(c *gin.Context, pair *appauth.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(pair.AccessExpiresIn.Seconds()), "/", "", h.cookieSecure, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken,
		int(time.Until(pair.RefreshExpiresAt).Seconds()), "/", "", h.cookieSecure, true)

	response.Success(c, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

func refreshTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	var body dto.RefreshRequest
	if c.Request.ContentLength != 0 {
		_ = c.ShouldBindJSON(&body)
	}
	return body.RefreshToken
}
