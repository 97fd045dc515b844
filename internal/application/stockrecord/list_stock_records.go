package stockrecord

import (
	"context"
	"errors"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/stockrecord"
	"github.com/yushu/bookadmin/internal/domain/user"
)

// ListStockRecordsUseCase 入库记录列表查询用例
type ListStockRecordsUseCase struct {
	recordRepo stockrecord.Repository
	bookRepo   book.Repository
	userRepo   user.Repository
}

// NewListStockRecordsUseCase 创建列表查询用例
func NewListStockRecordsUseCase(
	recordRepo stockrecord.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
) *ListStockRecordsUseCase {
	return &ListStockRecordsUseCase{
		recordRepo: recordRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
	}
}

// ListStockRecordsRequest 列表查询请求DTO
type ListStockRecordsRequest struct {
	Page      int    // 页码(从1开始)
	PageSize  int    // 每页数量
	BookName  string // 书名(模糊匹配)
	AdminName string // 操作人(模糊匹配)
}

// StockRecordListItem 列表项DTO
type StockRecordListItem struct {
	ID             uint   `json:"id"`
	BookID         uint   `json:"book_id"`
	BookName       string `json:"book_name"`
	BookNo         string `json:"book_no"`
	AdminID        uint   `json:"admin_id"`
	AdminName      string `json:"admin_name"`
	Quantity       int    `json:"quantity"`
	SignatureImage string `json:"signature_image"`
	Remarks        string `json:"remarks"`
	CreatedAt      string `json:"created_at"`
}

// ListStockRecordsResponse 列表查询响应DTO
type ListStockRecordsResponse struct {
	List     []StockRecordListItem `json:"list"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// Execute 执行列表查询用例
func (uc *ListStockRecordsUseCase) Execute(ctx context.Context, req ListStockRecordsRequest) (*ListStockRecordsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	records, total, err := uc.recordRepo.List(ctx, stockrecord.ListParams{
		Page:      req.Page,
		PageSize:  req.PageSize,
		BookName:  req.BookName,
		AdminName: req.AdminName,
	})
	if err != nil {
		return nil, err
	}

	list := make([]StockRecordListItem, len(records))
	for i, r := range records {
		item := StockRecordListItem{
			ID:             r.ID,
			BookID:         r.BookID,
			AdminID:        r.AdminID,
			Quantity:       r.Quantity,
			SignatureImage: r.SignatureImage,
			Remarks:        r.Remarks,
			CreatedAt:      r.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		if bk, err := uc.bookRepo.FindByID(ctx, r.BookID); err == nil {
			item.BookName = bk.Name
			item.BookNo = bk.BookNo
		} else if !errors.Is(err, book.ErrBookNotFound) {
			return nil, err
		}
		if u, err := uc.userRepo.FindByID(ctx, r.AdminID); err == nil {
			item.AdminName = u.Name
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}

		list[i] = item
	}

	return &ListStockRecordsResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
