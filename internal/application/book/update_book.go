package book

import (
	"context"
	"time"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/category"
)

// UpdateBookUseCase 更新图书用例(管理员操作)
type UpdateBookUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
	txManager    TxManager
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(
	bookRepo book.Repository,
	categoryRepo category.Repository,
	txManager TxManager,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
	}
}

// UpdateBookRequest 更新图书请求DTO
// Stock为nil表示不调整库存基准
type UpdateBookRequest struct {
	BookID      uint
	Name        string
	Author      string
	BookNo      string
	Cover       string
	Description string
	CategoryID  uint
	PublishAt   time.Time
	Stock       *int // 新的库存基准(nil表示不改)
}

// Execute 执行更新图书
// 库存基准调整不直接UPDATE stock=新值:
// 并发借阅可能正在扣减,覆盖写会吃掉扣减。
// 正确做法是在锁内算出差值,走AdjustStock原子加减——
// 基准调整和借阅扣减在同一个台账上串行叠加,谁也不会覆盖谁。
// 例:管理员把库存从10改成15的同时有人借走1本,
// 最终库存是14(10-1+5),而不是15
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) error {
	if req.Stock != nil && *req.Stock < 0 {
		return book.ErrInvalidStock
	}

	if req.CategoryID != 0 {
		if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
			return err
		}
	}

	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁内读到的stock是持锁后的准确值,差值计算不会被并发打乱
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		b.UpdateInfo(req.Name, req.Author, req.BookNo, req.Cover, req.Description,
			req.CategoryID, req.PublishAt)

		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		if req.Stock != nil {
			delta := *req.Stock - b.Stock
			if delta != 0 {
				if _, err := uc.bookRepo.AdjustStock(txCtx, req.BookID, delta); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
