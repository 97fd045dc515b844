package book

import (
	"context"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/borrow"
	"github.com/yushu/bookadmin/internal/domain/stockrecord"
)

// DeleteBookUseCase 删除图书用例(管理员操作)
type DeleteBookUseCase struct {
	bookRepo   book.Repository
	borrowRepo borrow.Repository
	recordRepo stockrecord.Repository
	txManager  TxManager
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	borrowRepo borrow.Repository,
	recordRepo stockrecord.Repository,
	txManager TxManager,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
		recordRepo: recordRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除图书
// 引用检查:存在借阅记录或入库记录的图书不允许删除,
// 否则这些记录的BookID悬空,库存对账也无从谈起。
// 检查和删除在同一事务内,且先锁图书行,
// 防止检查通过后、删除前又有人借走这本书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookRepo.LockByID(txCtx, bookID); err != nil {
			return err
		}

		borrowCount, err := uc.borrowRepo.CountByBookID(txCtx, bookID)
		if err != nil {
			return err
		}
		recordCount, err := uc.recordRepo.CountByBookID(txCtx, bookID)
		if err != nil {
			return err
		}
		if borrowCount > 0 || recordCount > 0 {
			return book.ErrBookReferenced
		}

		return uc.bookRepo.Delete(txCtx, bookID)
	})
}
