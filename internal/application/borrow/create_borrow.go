package borrow

import (
	"context"
	"log"
	"time"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/borrow"
	"github.com/yushu/bookadmin/internal/domain/user"
	"github.com/yushu/bookadmin/pkg/metrics"
)

// CreateBorrowUseCase 借书用例
// 这是整个项目最核心的用例之一
// 涉及:事务处理、并发控制、库存台账
type CreateBorrowUseCase struct {
	borrowRepo borrow.Repository
	bookRepo   book.Repository
	userRepo   user.Repository
	txManager  TxManager
	publisher  EventPublisher
}

// NewCreateBorrowUseCase 创建借书用例
func NewCreateBorrowUseCase(
	borrowRepo borrow.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CreateBorrowUseCase {
	return &CreateBorrowUseCase{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// CreateBorrowRequest 借书请求DTO
type CreateBorrowRequest struct {
	BookID uint // 图书ID
	UserID uint // 借阅人ID
}

// CreateBorrowResponse 借书响应DTO
type CreateBorrowResponse struct {
	BorrowID   uint   `json:"borrow_id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	Status     string `json:"status"`
	Stock      int    `json:"stock"` // 扣减后的库存
	BorrowDate string `json:"borrow_date"`
}

// Execute 执行借书用例
// 防止超借的完整流程:
//
// 核心问题:库存只剩1本时两人同时借
// 错误实现:
//  1. 查询库存 → 1本
//  2. 判断够不够 → 够
//  3. 扣减库存 → stock = stock - 1
//     结果:两个请求都通过了步骤2,库存变成-1
//
// 正确实现:悲观锁 + 原子扣减
//  1. SELECT FOR UPDATE 锁定图书行(同一本书的并发借阅在此串行化)
//  2. UPDATE ... SET stock = stock + ? WHERE stock + ? >= 0 原子扣减
//  3. 创建借阅记录
//  4. COMMIT释放锁
//
// 库存扣减和借阅记录创建在同一事务内,任何一步失败整体回滚,
// 不会出现"扣了库存没有记录"或"有记录没扣库存"
func (uc *CreateBorrowUseCase) Execute(ctx context.Context, req CreateBorrowRequest) (*CreateBorrowResponse, error) {
	start := time.Now()

	// 借阅人校验(禁用账号不能借书)
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, user.ErrUserDisabled
	}

	var (
		result   *borrow.Borrow
		newStock int
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1:锁定图书行(悲观锁)
		// SELECT * FROM books WHERE id = ? FOR UPDATE
		// 其他事务必须等待当前事务COMMIT或ROLLBACK后才能访问该行
		if _, err := uc.bookRepo.LockByID(txCtx, req.BookID); err != nil {
			return err
		}

		// 步骤2:原子扣减库存
		// 单条UPDATE带WHERE stock + ? >= 0,数据库层面保证库存不为负,
		// 即使锁被绕过也扣不出负数
		stock, err := uc.bookRepo.AdjustStock(txCtx, req.BookID, -1)
		if err != nil {
			return err
		}
		newStock = stock

		// 步骤3:创建借阅记录(借出中)
		b := borrow.NewBorrow(req.BookID, req.UserID)
		if err := uc.borrowRepo.Create(txCtx, b); err != nil {
			return err
		}

		result = b
		return nil
	})

	if err != nil {
		if metrics.BorrowsRejectedTotal != nil && err == book.ErrOutOfStock {
			metrics.BorrowsRejectedTotal.Inc()
		}
		return nil, err
	}

	if metrics.BorrowsCreatedTotal != nil {
		metrics.BorrowsCreatedTotal.Inc()
		metrics.BorrowTxDuration.Observe(time.Since(start).Seconds())
	}

	// 事务提交后发布事件,失败只记日志不影响主流程
	if err := uc.publisher.Publish("borrow.created", BorrowCreatedEvent{
		BorrowID: result.ID,
		BookID:   result.BookID,
		UserID:   result.UserID,
		Stock:    newStock,
		BorrowAt: result.BorrowDate.Format(time.RFC3339),
	}); err != nil {
		log.Printf("发布borrow.created事件失败: %v", err)
	}

	return &CreateBorrowResponse{
		BorrowID:   result.ID,
		BookID:     result.BookID,
		UserID:     result.UserID,
		Status:     result.Status.String(),
		Stock:      newStock,
		BorrowDate: result.BorrowDate.Format("2006-01-02 15:04:05"),
	}, nil
}
