package stockrecord

import (
	"context"
	"log"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/stockrecord"
	"github.com/yushu/bookadmin/internal/domain/user"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/metrics"
)

// CreateStockRecordUseCase 入库用例(管理员操作)
// 入库 = 库存增加 + 一条不可抵赖的入库凭证(谁、何时、多少、签名)
type CreateStockRecordUseCase struct {
	recordRepo stockrecord.Repository
	bookRepo   book.Repository
	userRepo   user.Repository
	txManager  TxManager
	publisher  EventPublisher
}

// NewCreateStockRecordUseCase 创建入库用例
func NewCreateStockRecordUseCase(
	recordRepo stockrecord.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CreateStockRecordUseCase {
	return &CreateStockRecordUseCase{
		recordRepo: recordRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// CreateStockRecordRequest 入库请求DTO
type CreateStockRecordRequest struct {
	BookID         uint   // 图书ID
	AdminID        uint   // 操作人ID(从JWT中提取)
	Quantity       int    // 入库数量(必须为正)
	SignatureImage string // 手写签名图片(base64)
	Remarks        string // 备注
}

// CreateStockRecordResponse 入库响应DTO
type CreateStockRecordResponse struct {
	RecordID  uint   `json:"record_id"`
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"` // 入库后的库存
	CreatedAt string `json:"created_at"`
}

// Execute 执行入库用例
// 流程:
//  1. 操作人权限校验(仅管理员可入库)
//  2. 事务内:锁图书行 → 库存+quantity → 写入库凭证
//
// 库存增加和凭证写入原子:不会出现库存涨了没凭证,
// 也不会出现有凭证库存没涨
func (uc *CreateStockRecordUseCase) Execute(ctx context.Context, req CreateStockRecordRequest) (*CreateStockRecordResponse, error) {
	// 权限校验(中间件已经拦了一次,用例内再兜一次底,
	// 防止未来新调用方绕过HTTP层)
	operator, err := uc.userRepo.FindByID(ctx, req.AdminID)
	if err != nil {
		return nil, err
	}
	if !operator.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	// 数量校验在工厂方法内(quantity<=0返回ErrInvalidQuantity)
	record, err := stockrecord.NewStockRecord(req.BookID, req.AdminID, req.Quantity, req.SignatureImage, req.Remarks)
	if err != nil {
		return nil, err
	}

	var newStock int
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行,与借阅侧的加锁顺序一致
		if _, err := uc.bookRepo.LockByID(txCtx, req.BookID); err != nil {
			return err
		}

		stock, err := uc.bookRepo.AdjustStock(txCtx, req.BookID, req.Quantity)
		if err != nil {
			return err
		}
		newStock = stock

		return uc.recordRepo.Create(txCtx, record)
	})

	if err != nil {
		return nil, err
	}

	if metrics.StockInTotal != nil {
		metrics.StockInTotal.Inc()
		metrics.StockAdjustmentsTotal.WithLabelValues("stock_in", "success").Inc()
	}

	if err := uc.publisher.Publish("stock.in", StockInEvent{
		RecordID: record.ID,
		BookID:   record.BookID,
		AdminID:  record.AdminID,
		Quantity: record.Quantity,
		Stock:    newStock,
	}); err != nil {
		log.Printf("发布stock.in事件失败: %v", err)
	}

	return &CreateStockRecordResponse{
		RecordID:  record.ID,
		BookID:    record.BookID,
		Quantity:  record.Quantity,
		Stock:     newStock,
		CreatedAt: record.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
