package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, category *Category) error

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Category, error)

	// Update 更新分类
	Update(ctx context.Context, category *Category) error

	// Delete 删除分类
	Delete(ctx context.Context, id uint) error

	// ListAll 查询全部分类
	ListAll(ctx context.Context) ([]*Category, error)

	// ListByLevel 按层级查询分类
	ListByLevel(ctx context.Context, level int) ([]*Category, error)

	// ListRoots 查询一级分类(含装配好的Children)
	ListRoots(ctx context.Context) ([]*Category, error)
}
