package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/yushu/bookadmin/internal/domain/user"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// ManageUsersUseCase 用户管理用例(管理员操作)
// 创建/更新/删除/列表,后台用户管理页面的全部操作
type ManageUsersUseCase struct {
	userRepo    user.Repository
	userService user.Service
}

// NewManageUsersUseCase 创建用户管理用例
func NewManageUsersUseCase(userRepo user.Repository, userService user.Service) *ManageUsersUseCase {
	return &ManageUsersUseCase{
		userRepo:    userRepo,
		userService: userService,
	}
}

// CreateUserRequest 创建用户请求DTO
type CreateUserRequest struct {
	Name     string
	Password string
	NickName string
	Role     string // admin/user
	Sex      string // male/female
}

// CreateUserResponse 创建用户响应DTO
type CreateUserResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// CreateUser 创建用户
func (uc *ManageUsersUseCase) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error) {
	u, err := uc.userService.CreateUser(ctx, req.Name, req.Password, req.NickName,
		user.Role(req.Role), user.Sex(req.Sex))
	if err != nil {
		return nil, err
	}

	return &CreateUserResponse{
		UserID: u.ID,
		Name:   u.Name,
		Role:   string(u.Role),
	}, nil
}

// UpdateUserRequest 更新用户请求DTO
// Password为空表示不修改密码
type UpdateUserRequest struct {
	UserID   uint
	NickName string
	Password string
	Role     string
	Status   string // on/off
	Sex      string
}

// UpdateUser 更新用户
// 禁用账号(status=off)后该用户无法再登录,
// 已签发的Token由认证中间件的会话检查拦截
func (uc *ManageUsersUseCase) UpdateUser(ctx context.Context, req UpdateUserRequest) error {
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	if req.Role != "" && !user.Role(req.Role).Valid() {
		return user.ErrInvalidRole
	}

	u.UpdateProfile(req.NickName, user.Role(req.Role), user.Status(req.Status), user.Sex(req.Sex))

	if req.Password != "" {
		if len(req.Password) < 6 || len(req.Password) > 20 {
			return user.ErrWeakPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return apperrors.Wrap(err, "密码加密失败")
		}
		u.Password = string(hashed)
	}

	return uc.userRepo.Update(ctx, u)
}

// DeleteUser 删除用户(软删除)
func (uc *ManageUsersUseCase) DeleteUser(ctx context.Context, userID uint) error {
	return uc.userRepo.Delete(ctx, userID)
}

// ListUsersRequest 列表查询请求DTO
type ListUsersRequest struct {
	Page     int
	PageSize int
	Name     string  // 用户名/昵称(模糊匹配)
	Status   *string // on/off(nil表示不限)
	All      bool
}

// UserListItem 列表项DTO(不含密码)
type UserListItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	NickName  string `json:"nick_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Sex       string `json:"sex"`
	CreatedAt string `json:"created_at"`
}

// ListUsersResponse 列表查询响应DTO
type ListUsersResponse struct {
	List     []UserListItem `json:"list"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ListUsers 分页查询用户列表
func (uc *ManageUsersUseCase) ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := user.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Name:     req.Name,
		All:      req.All,
	}
	if req.Status != nil {
		s := user.Status(*req.Status)
		params.Status = &s
	}

	users, total, err := uc.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]UserListItem, len(users))
	for i, u := range users {
		list[i] = UserListItem{
			ID:        u.ID,
			Name:      u.Name,
			NickName:  u.NickName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			Sex:       string(u.Sex),
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return &ListUsersResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
