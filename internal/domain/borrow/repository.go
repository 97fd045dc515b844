package borrow

import (
	"context"
)

// Repository 借阅仓储接口
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(依赖倒置)
// 2. 支持事务操作(通过context传递事务)
// 3. Delete是物理删除:删除借出中记录时应用层会先补偿库存,
//    软删除会让库存对账时多算一条记录
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, borrow *Borrow) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Borrow, error)

	// Update 更新借阅记录(归还时写status和return_date)
	Update(ctx context.Context, borrow *Borrow) error

	// Delete 删除借阅记录(物理删除)
	Delete(ctx context.Context, id uint) error

	// CountByBookID 统计某图书的借阅记录数(删除图书前的引用检查)
	CountByBookID(ctx context.Context, bookID uint) (int64, error)

	// CountActiveByBookID 统计某图书借出中的记录数(库存对账)
	CountActiveByBookID(ctx context.Context, bookID uint) (int64, error)

	// List 分页查询借阅记录
	List(ctx context.Context, params ListParams) ([]*Borrow, int64, error)
}

// ListParams 列表查询参数
// bookName/userName/author需要联表过滤,由infrastructure层处理
type ListParams struct {
	Page     int
	PageSize int
	BookName string  // 书名(模糊匹配)
	UserName string  // 借阅人用户名(模糊匹配)
	Author   string  // 作者(模糊匹配)
	Status   *Status // 借阅状态(nil表示不限)
}
