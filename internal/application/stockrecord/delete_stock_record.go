package stockrecord

import (
	"context"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/stockrecord"
	"github.com/yushu/bookadmin/pkg/metrics"
)

// DeleteStockRecordUseCase 删除入库记录用例(管理员操作)
type DeleteStockRecordUseCase struct {
	recordRepo stockrecord.Repository
	bookRepo   book.Repository
	txManager  TxManager
}

// NewDeleteStockRecordUseCase 创建删除入库记录用例
func NewDeleteStockRecordUseCase(
	recordRepo stockrecord.Repository,
	bookRepo book.Repository,
	txManager TxManager,
) *DeleteStockRecordUseCase {
	return &DeleteStockRecordUseCase{
		recordRepo: recordRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除入库记录
// 删除入库记录 = 撤销那次入库,对应数量的库存要扣回去
//
// 冲突场景:入库10本后已有部分被借出,此时撤销入库要扣回10本,
// 但在馆的不足10本。扣减的WHERE stock + ? >= 0不满足,
// AdjustStock返回ErrOutOfStock,整个事务回滚——
// 记录保留,库存不动,把冲突报给调用方,由管理员先催还再撤销。
// 不做部分扣减:部分扣减会让"记录总量-库存"的对账关系对不上
func (uc *DeleteStockRecordUseCase) Execute(ctx context.Context, recordID uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		record, err := uc.recordRepo.FindByID(txCtx, recordID)
		if err != nil {
			return err
		}

		// 锁定图书行
		if _, err := uc.bookRepo.LockByID(txCtx, record.BookID); err != nil {
			return err
		}

		// 扣回当初入库的数量,库存不足时这里失败并回滚
		if _, err := uc.bookRepo.AdjustStock(txCtx, record.BookID, -record.Quantity); err != nil {
			return err
		}

		return uc.recordRepo.Delete(txCtx, record.ID)
	})

	if metrics.StockAdjustmentsTotal != nil {
		if err == book.ErrOutOfStock {
			metrics.StockAdjustmentsTotal.WithLabelValues("stock_record_delete", "out_of_stock").Inc()
		} else if err == nil {
			metrics.StockAdjustmentsTotal.WithLabelValues("stock_record_delete", "success").Inc()
		}
	}

	return err
}
