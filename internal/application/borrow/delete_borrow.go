package borrow

import (
	"context"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/borrow"
	"github.com/yushu/bookadmin/pkg/metrics"
)

// DeleteBorrowUseCase 删除借阅记录用例(管理员操作)
type DeleteBorrowUseCase struct {
	borrowRepo borrow.Repository
	bookRepo   book.Repository
	txManager  TxManager
}

// NewDeleteBorrowUseCase 创建删除借阅记录用例
func NewDeleteBorrowUseCase(
	borrowRepo borrow.Repository,
	bookRepo book.Repository,
	txManager TxManager,
) *DeleteBorrowUseCase {
	return &DeleteBorrowUseCase{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除借阅记录
// 补偿规则:
// - 删除"借出中"的记录,等价于这本书回到了馆里,库存+1
// - 删除"已归还"的记录,库存在归还时已经加回,直接删,不再补偿
//   (否则同一个库存单位会被加回两次)
//
// 补偿和删除在同一事务内,删除失败则库存补偿一并回滚
func (uc *DeleteBorrowUseCase) Execute(ctx context.Context, borrowID uint) error {
	compensated := false

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.borrowRepo.FindByID(txCtx, borrowID)
		if err != nil {
			return err
		}

		// 锁定图书行,与借书/还书的加锁顺序保持一致
		if _, err := uc.bookRepo.LockByID(txCtx, b.BookID); err != nil {
			return err
		}

		// 锁内重读,防止并发归还后重复补偿
		b, err = uc.borrowRepo.FindByID(txCtx, borrowID)
		if err != nil {
			return err
		}

		if b.HoldsStock() {
			if _, err := uc.bookRepo.AdjustStock(txCtx, b.BookID, +1); err != nil {
				return err
			}
			compensated = true
		}

		return uc.borrowRepo.Delete(txCtx, b.ID)
	})

	if err != nil {
		return err
	}

	if compensated && metrics.StockAdjustmentsTotal != nil {
		metrics.StockAdjustmentsTotal.WithLabelValues("borrow_delete", "success").Inc()
	}

	return nil
}
