package book

import (
	"context"
	"time"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/category"
)

// CreateBookUseCase 创建图书用例(管理员操作)
type CreateBookUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(bookRepo book.Repository, categoryRepo category.Repository) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	Name        string // 书名
	Author      string // 作者
	BookNo      string // 图书编号
	Cover       string // 封面图片URL
	Description string // 图书描述
	Stock       int    // 初始库存(>=0)
	CategoryID  uint   // 分类ID(0表示未分类)
	PublishAt   time.Time
}

// CreateBookResponse 创建图书响应DTO
type CreateBookResponse struct {
	BookID    uint   `json:"book_id"`
	BookNo    string `json:"book_no"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行创建图书
// 初始库存随图书一起写入,此时还没有任何借阅/入库记录,
// 是唯一一次不经过AdjustStock写stock的场景
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*CreateBookResponse, error) {
	if req.Stock < 0 {
		return nil, book.ErrInvalidStock
	}

	// 分类校验(传了分类就必须存在)
	if req.CategoryID != 0 {
		if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	b := book.NewBook(req.Name, req.Author, req.BookNo, req.Cover, req.Description,
		req.Stock, req.CategoryID, req.PublishAt)

	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	return &CreateBookResponse{
		BookID:    b.ID,
		BookNo:    b.BookNo,
		Name:      b.Name,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
