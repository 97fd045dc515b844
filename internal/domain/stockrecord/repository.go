package stockrecord

import (
	"context"
)

// Repository 入库记录仓储接口
// 与借阅仓储一样支持context事务传递;删除为物理删除,
// 应用层在同一事务内先做库存扣回再删记录
type Repository interface {
	// Create 创建入库记录
	Create(ctx context.Context, record *StockRecord) error

	// FindByID 根据ID查找入库记录
	FindByID(ctx context.Context, id uint) (*StockRecord, error)

	// Delete 删除入库记录(物理删除)
	Delete(ctx context.Context, id uint) error

	// CountByBookID 统计某图书的入库记录数(删除图书前的引用检查)
	CountByBookID(ctx context.Context, bookID uint) (int64, error)

	// SumQuantityByBookID 某图书所有入库记录的数量合计(库存对账)
	SumQuantityByBookID(ctx context.Context, bookID uint) (int64, error)

	// List 分页查询入库记录
	List(ctx context.Context, params ListParams) ([]*StockRecord, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page      int
	PageSize  int
	BookName  string // 书名(模糊匹配)
	AdminName string // 管理员用户名(模糊匹配)
}
