package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookworm/internal/application/user"
	"github.com/xiebiao/bookworm/internal/interface/http/dto"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
	"github.com/xiebiao/bookworm/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	register *appuser.RegisterUseCase
	current  *appuser.CurrentUserUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(register *appuser.RegisterUseCase, current *appuser.CurrentUserUseCase) *UserHandler {
	return &UserHandler{register: register, current: current}
}

// Register 用户注册
// @Summary      用户注册
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserInfo} "注册成功"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Failure      422 {object} response.Response "参数错误"
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.register.Execute(c.Request.Context(), appuser.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// Me 当前登录用户
// @Summary      当前用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserInfo}
// @Failure      401 {object} response.Response "未登录"
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	info, err := h.current.Execute(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
