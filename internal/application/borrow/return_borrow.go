package borrow

import (
	"context"
	"log"
	"time"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/borrow"
	"github.com/yushu/bookadmin/pkg/metrics"
)

// ReturnBorrowUseCase 还书用例
type ReturnBorrowUseCase struct {
	borrowRepo borrow.Repository
	bookRepo   book.Repository
	txManager  TxManager
	publisher  EventPublisher
}

// NewReturnBorrowUseCase 创建还书用例
func NewReturnBorrowUseCase(
	borrowRepo borrow.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *ReturnBorrowUseCase {
	return &ReturnBorrowUseCase{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// ReturnBorrowResponse 还书响应DTO
type ReturnBorrowResponse struct {
	BorrowID   uint   `json:"borrow_id"`
	BookID     uint   `json:"book_id"`
	Status     string `json:"status"`
	Stock      int    `json:"stock"` // 回补后的库存
	ReturnDate string `json:"return_date"`
}

// Execute 执行还书用例
// 状态转换 + 库存回补在同一事务内:
//  1. 锁定图书行(和借书走同一把锁,与并发借书串行化)
//  2. 查借阅记录,MarkReturned(已归还的记录在这里被拒绝,
//     防止重复归还把库存重复加回)
//  3. 持久化状态和归还时间
//  4. 库存+1
//
// 注意加锁顺序:先锁图书行,再动借阅记录,
// 与借书/删除记录的加锁顺序一致,避免死锁
func (uc *ReturnBorrowUseCase) Execute(ctx context.Context, borrowID uint) (*ReturnBorrowResponse, error) {
	var (
		result   *borrow.Borrow
		newStock int
	)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 先查一次拿到BookID(不加锁),真正的状态检查在锁内再做
		b, err := uc.borrowRepo.FindByID(txCtx, borrowID)
		if err != nil {
			return err
		}

		// 锁定图书行
		if _, err := uc.bookRepo.LockByID(txCtx, b.BookID); err != nil {
			return err
		}

		// 锁内重读借阅记录,拿到的是持锁后的最新状态
		b, err = uc.borrowRepo.FindByID(txCtx, borrowID)
		if err != nil {
			return err
		}

		// 状态转换:借出中 → 已归还
		if err := b.MarkReturned(); err != nil {
			return err
		}

		if err := uc.borrowRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 库存回补
		stock, err := uc.bookRepo.AdjustStock(txCtx, b.BookID, +1)
		if err != nil {
			return err
		}
		newStock = stock

		result = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	if metrics.BorrowsReturnedTotal != nil {
		metrics.BorrowsReturnedTotal.Inc()
	}

	if err := uc.publisher.Publish("borrow.returned", BorrowReturnedEvent{
		BorrowID: result.ID,
		BookID:   result.BookID,
		UserID:   result.UserID,
		Stock:    newStock,
		ReturnAt: result.ReturnDate.Format(time.RFC3339),
	}); err != nil {
		log.Printf("发布borrow.returned事件失败: %v", err)
	}

	return &ReturnBorrowResponse{
		BorrowID:   result.ID,
		BookID:     result.BookID,
		Status:     result.Status.String(),
		Stock:      newStock,
		ReturnDate: result.ReturnDate.Format("2006-01-02 15:04:05"),
	}, nil
}
