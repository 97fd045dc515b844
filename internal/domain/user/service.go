package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// Service 用户领域服务
// 设计说明:
// 1. Service包含不属于单个实体的业务逻辑(如密码加密、验证)
// 2. Service依赖Repository接口,不依赖具体实现(依赖倒置)
// 3. Service不处理HTTP请求,只处理业务逻辑
type Service interface {
	// CreateUser 创建用户(管理员在后台录入)
	CreateUser(ctx context.Context, name, password, nickName string, role Role, sex Sex) (*User, error)

	// Login 用户名密码登录
	Login(ctx context.Context, name, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateUser 创建用户
// 业务规则:
// 1. 用户名2-50个字符
// 2. 密码6-20位
// 3. 角色必须是合法枚举值
// 4. 密码bcrypt加密(cost=12);用户名唯一性由数据库UNIQUE索引保证
func (s *service) CreateUser(ctx context.Context, name, password, nickName string, role Role, sex Sex) (*User, error) {
	if len(name) < 2 || len(name) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名长度应为2-50个字符")
	}

	if len(password) < 6 || len(password) > 20 {
		return nil, ErrWeakPassword
	}

	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// bcrypt自动加盐,cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(name, string(hashedPassword), nickName, role, sex)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 业务规则:
// 1. 用户名必须存在且状态为启用
// 2. 密码必须正确
func (s *service) Login(ctx context.Context, name, password string) (*User, error) {
	u, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err // Repository已转换为ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserDisabled
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err // 返回ErrInvalidPassword
	}

	return u, nil
}

// ValidatePassword 验证密码
// 说明:登录时使用,验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}
