package user

import (
	"context"

	"github.com/xiebiao/bookworm/internal/domain/user"
	"github.com/xiebiao/bookworm/pkg/logger"
)

// RegisterUseCase 用户注册用例
// 公开注册只能创建普通用户，管理员由种子数据创建
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 执行注册
// 返回应用层DTO，不返回密码哈希
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password, false)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Uint("user_id", u.ID).Msg("user registered")
	return toUserInfo(u), nil
}

// CurrentUserUseCase 查询当前登录用户
type CurrentUserUseCase struct {
	userService user.Service
}

func NewCurrentUserUseCase(userService user.Service) *CurrentUserUseCase {
	return &CurrentUserUseCase{userService: userService}
}

func (uc *CurrentUserUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserInfo 用户信息
type UserInfo struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Admin     bool   `json:"admin"`
}

func toUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Admin:     u.Admin,
	}
}
