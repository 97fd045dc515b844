package book

import (
	"context"
	"errors"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/category"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持分页、按书名/作者模糊搜索、按分类过滤
// 2. all=true时返回全部(前端下拉框场景)
type ListBooksUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookRepo book.Repository, categoryRepo category.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Name     string // 书名(模糊匹配)
	Author   string // 作者(模糊匹配)
	Category uint   // 分类ID(0表示不限)
	All      bool   // true时忽略分页返回全部
}

// BookListItem 列表项DTO
type BookListItem struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Author       string `json:"author"`
	BookNo       string `json:"book_no"`
	Cover        string `json:"cover"`
	Description  string `json:"description"`
	Stock        int    `json:"stock"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	PublishAt    string `json:"publish_at"`
	CreatedAt    string `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List     []BookListItem `json:"list"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
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

	books, total, err := uc.bookRepo.List(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Name:     req.Name,
		Author:   req.Author,
		Category: req.Category,
		All:      req.All,
	})
	if err != nil {
		return nil, err
	}

	// 分类名一次查全量建索引,避免逐条查询
	categoryNames := make(map[uint]string)
	if categories, err := uc.categoryRepo.ListAll(ctx); err == nil {
		for _, c := range categories {
			categoryNames[c.ID] = c.Name
		}
	} else if !errors.Is(err, category.ErrCategoryNotFound) {
		return nil, err
	}

	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:           b.ID,
			Name:         b.Name,
			Author:       b.Author,
			BookNo:       b.BookNo,
			Cover:        b.Cover,
			Description:  b.Description,
			Stock:        b.Stock,
			CategoryID:   b.CategoryID,
			CategoryName: categoryNames[b.CategoryID],
			PublishAt:    b.PublishAt.Format("2006-01-02"),
			CreatedAt:    b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return &ListBooksResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
