package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yushu/bookadmin/internal/domain/book"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. AdjustStock是整张books表stock字段的唯一写入点:
//    Update通过Omit("stock")显式排除stock,结构上杜绝绕过台账改库存
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Name:        b.Name,
		Author:      b.Author,
		BookNo:      b.BookNo,
		Cover:       b.Cover,
		Description: b.Description,
		Stock:       b.Stock,
		CategoryID:  b.CategoryID,
		PublishAt:   b.PublishAt,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBookNoDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书元信息
// 注意:显式Omit("stock"),库存只能通过AdjustStock变更
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:          b.ID,
		Name:        b.Name,
		Author:      b.Author,
		BookNo:      b.BookNo,
		Cover:       b.Cover,
		Description: b.Description,
		CategoryID:  b.CategoryID,
		PublishAt:   b.PublishAt,
	}

	result := dbFromContext(ctx, r.db).Model(&BookModel{ID: b.ID}).
		Select("name", "author", "book_no", "cover", "description", "category_id", "publish_at").
		Omit("stock").
		Updates(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrBookNoDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		// Updates对不存在的行不报错,这里补一次存在性检查
		var count int64
		dbFromContext(ctx, r.db).Model(&BookModel{}).Where("id = ?", b.ID).Count(&count)
		if count == 0 {
			return book.ErrBookNotFound
		}
	}

	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&BookModel{})

	if params.Name != "" {
		query = query.Where("name LIKE ?", "%"+params.Name+"%")
	}
	if params.Author != "" {
		query = query.Where("author LIKE ?", "%"+params.Author+"%")
	}
	if params.Category != 0 {
		query = query.Where("category_id = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	query = query.Order("created_at DESC")

	// all=true时跳过分页(前端下拉框场景)
	if !params.All {
		offset := (params.Page - 1) * params.PageSize
		query = query.Limit(params.PageSize).Offset(offset)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// LockByID 悲观锁查询图书
// SELECT * FROM books WHERE id = ? FOR UPDATE
// 在图书行上加排他锁,同一本书的并发库存操作在此串行化,
// 两个并发借阅不可能都读到同一个扣减前的库存值
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// AdjustStock 原子调整库存,返回调整后的库存值
// 单条UPDATE完成检查+写入,WHERE条件防止库存为负:
//
//	UPDATE books SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
//
// RowsAffected==0时再查一次区分"图书不存在"和"库存不足"
func (r *bookRepository) AdjustStock(ctx context.Context, id uint, delta int) (int, error) {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, book.ErrBookNotFound
			}
			return 0, apperrors.Wrap(err, "查询图书失败")
		}
		// 图书存在,说明是库存不足
		return 0, book.ErrOutOfStock
	}

	// 回读调整后的库存(同一事务内,读到的就是刚写入的值)
	var model BookModel
	if err := db.Select("stock").First(&model, id).Error; err != nil {
		return 0, apperrors.Wrap(err, "回读库存失败")
	}

	return model.Stock, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Name:        model.Name,
		Author:      model.Author,
		BookNo:      model.BookNo,
		Cover:       model.Cover,
		Description: model.Description,
		Stock:       model.Stock,
		CategoryID:  model.CategoryID,
		PublishAt:   model.PublishAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
