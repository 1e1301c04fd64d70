package dto

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50" example:"Ada"`
	LastName  string `json:"last_name" binding:"required,max=50" example:"Lovelace"`
	Email     string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=72" example:"secret123"`
}
