package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. AdjustStock是库存的唯一写入口(库存台账原语):
//    借书(-1)、还书(+1)、入库(+N)、删除入库记录(-N)全部经过它,
//    Update只更新元信息字段,保证库存守恒可以按构造检查
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书元信息(不含stock字段)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	// 引用检查(借阅/入库记录)由应用层在同一事务内完成
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 所有会调整库存的用例必须先LockByID,保证同一图书的库存更新串行化,
	// 防止两个并发借阅都读到stock=1后同时扣减成功
	LockByID(ctx context.Context, id uint) (*Book, error)

	// AdjustStock 原子调整库存,返回调整后的库存值
	// delta为正表示增加,为负表示扣减
	// 内部以单条UPDATE完成检查+写入:
	//   UPDATE books SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
	// 扣减会导致负库存时返回ErrOutOfStock,图书不存在时返回ErrBookNotFound
	AdjustStock(ctx context.Context, id uint, delta int) (int, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Name     string // 书名(模糊匹配)
	Author   string // 作者(模糊匹配)
	Category uint   // 分类ID(0表示不限)
	All      bool   // true时忽略分页返回全部(下拉框场景)
}
