package borrow

import (
	"context"
	"errors"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/borrow"
	"github.com/yushu/bookadmin/internal/domain/user"
)

// ListBorrowsUseCase 借阅记录列表查询用例
// 列表项带图书/借阅人快照,前端表格直接渲染,不用再逐条查询
type ListBorrowsUseCase struct {
	borrowRepo borrow.Repository
	bookRepo   book.Repository
	userRepo   user.Repository
}

// NewListBorrowsUseCase 创建列表查询用例
func NewListBorrowsUseCase(
	borrowRepo borrow.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
) *ListBorrowsUseCase {
	return &ListBorrowsUseCase{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
	}
}

// ListBorrowsRequest 列表查询请求DTO
type ListBorrowsRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	BookName string // 书名(模糊匹配)
	UserName string // 借阅人(模糊匹配)
	Author   string // 作者(模糊匹配)
	Status   *int   // 借阅状态(nil表示不限)
}

// BorrowListItem 列表项DTO
type BorrowListItem struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	BookName   string `json:"book_name"`
	BookNo     string `json:"book_no"`
	Author     string `json:"author"`
	UserID     uint   `json:"user_id"`
	UserName   string `json:"user_name"`
	NickName   string `json:"nick_name"`
	Status     int    `json:"status"`
	StatusText string `json:"status_text"`
	BorrowDate string `json:"borrow_date"`
	ReturnDate string `json:"return_date"` // 借出中为空字符串
}

// ListBorrowsResponse 列表查询响应DTO
type ListBorrowsResponse struct {
	List     []BorrowListItem `json:"list"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Execute 执行列表查询用例
func (uc *ListBorrowsUseCase) Execute(ctx context.Context, req ListBorrowsRequest) (*ListBorrowsResponse, error) {
	// 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := borrow.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		BookName: req.BookName,
		UserName: req.UserName,
		Author:   req.Author,
	}
	if req.Status != nil {
		s := borrow.Status(*req.Status)
		params.Status = &s
	}

	borrows, total, err := uc.borrowRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]BorrowListItem, len(borrows))
	for i, b := range borrows {
		item := BorrowListItem{
			ID:         b.ID,
			BookID:     b.BookID,
			UserID:     b.UserID,
			Status:     int(b.Status),
			StatusText: b.Status.String(),
			BorrowDate: b.BorrowDate.Format("2006-01-02 15:04:05"),
		}
		if b.ReturnDate != nil {
			item.ReturnDate = b.ReturnDate.Format("2006-01-02 15:04:05")
		}

		// 图书/借阅人可能已被删除,快照字段留空,列表不整体失败
		if bk, err := uc.bookRepo.FindByID(ctx, b.BookID); err == nil {
			item.BookName = bk.Name
			item.BookNo = bk.BookNo
			item.Author = bk.Author
		} else if !errors.Is(err, book.ErrBookNotFound) {
			return nil, err
		}
		if u, err := uc.userRepo.FindByID(ctx, b.UserID); err == nil {
			item.UserName = u.Name
			item.NickName = u.NickName
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}

		list[i] = item
	}

	return &ListBorrowsResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
