package dto

// LoginForm 登录表单（application/x-www-form-urlencoded），username即邮箱
type LoginForm struct {
	Username string `form:"username" binding:"required" example:"reader@bookworm.dev"`
	Password string `form:"password" binding:"required" example:"bookworm123"`
}

// RefreshRequest Cookie中没有refresh_token时从JSON body读取
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse 登录/刷新响应
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"bearer"`
}

// MessageResponse 只有提示信息的响应
type MessageResponse struct {
	Message string `json:"message" example:"Successfully logged out"`
}

// RevokeAllResponse 吊销全部Token
type RevokeAllResponse struct {
	Revoked int64 `json:"revoked" example:"3"`
}
