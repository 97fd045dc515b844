package book

import (
	"context"
	"errors"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/category"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookRepo book.Repository, categoryRepo category.Repository) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookListItem, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	item := &BookListItem{
		ID:          b.ID,
		Name:        b.Name,
		Author:      b.Author,
		BookNo:      b.BookNo,
		Cover:       b.Cover,
		Description: b.Description,
		Stock:       b.Stock,
		CategoryID:  b.CategoryID,
		PublishAt:   b.PublishAt.Format("2006-01-02"),
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if b.CategoryID != 0 {
		if c, err := uc.categoryRepo.FindByID(ctx, b.CategoryID); err == nil {
			item.CategoryName = c.Name
		} else if !errors.Is(err, category.ErrCategoryNotFound) {
			return nil, err
		}
	}

	return item, nil
}
