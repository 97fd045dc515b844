package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/yushu/bookadmin/internal/application/user"
	"github.com/yushu/bookadmin/internal/interface/http/dto"
	"github.com/yushu/bookadmin/internal/interface/http/middleware"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/jwt"
	"github.com/yushu/bookadmin/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	loginUseCase       *appuser.LoginUseCase
	logoutUseCase      *appuser.LogoutUseCase
	manageUsersUseCase *appuser.ManageUsersUseCase
	jwtManager         *jwt.Manager
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	manageUsersUseCase *appuser.ManageUsersUseCase,
	jwtManager *jwt.Manager,
) *UserHandler {
	return &UserHandler{
		loginUseCase:       loginUseCase,
		logoutUseCase:      logoutUseCase,
		manageUsersUseCase: manageUsersUseCase,
		jwtManager:         jwtManager,
	}
}

// Login 登录
// @Summary      用户登录
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse}
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Name:     req.Name,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 登出
// @Summary      用户登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RefreshToken 刷新Access Token
// @Summary      刷新Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "Refresh Token无效"
// @Router       /api/v1/auth/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	accessToken, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"access_token": accessToken})
}

// CreateUser 创建用户
// @Summary      创建用户
// @Description  管理员在后台录入用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      200 {object} response.Response{data=appuser.CreateUserResponse}
// @Failure      409 {object} response.Response "用户名已存在"
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUsersUseCase.CreateUser(c.Request.Context(), appuser.CreateUserRequest{
		Name:     req.Name,
		Password: req.Password,
		NickName: req.NickName,
		Role:     req.Role,
		Sex:      req.Sex,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateUser 更新用户
// @Summary      更新用户
// @Description  管理员更新用户资料/角色/状态,密码留空表示不修改
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserRequest true "用户信息"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	err = h.manageUsersUseCase.UpdateUser(c.Request.Context(), appuser.UpdateUserRequest{
		UserID:   userID,
		NickName: req.NickName,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
		Sex:      req.Sex,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.manageUsersUseCase.DeleteUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        name query string false "用户名/昵称"
// @Param        status query string false "状态(on/off)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appuser.UserListItem}}
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUsersUseCase.ListUsers(c.Request.Context(), appuser.ListUsersRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Name:     req.Name,
		Status:   req.Status,
		All:      req.All,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}
