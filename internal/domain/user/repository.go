package user

import (
	"context"
)

// Repository 用户仓储接口
// 1. 接口定义在domain层(依赖倒置原则)
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 便于单元测试(Mock此接口)
type Repository interface {
	// Create 创建用户
	// 注意:如果用户名已存在,应返回ErrNameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在,返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByName 根据用户名查找用户(登录用)
	FindByName(ctx context.Context, name string) (*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询用户列表
	List(ctx context.Context, params ListParams) ([]*User, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Name     string  // 用户名(模糊匹配)
	Status   *Status // 状态(nil表示不限)
	All      bool    // true时忽略分页返回全部
}
