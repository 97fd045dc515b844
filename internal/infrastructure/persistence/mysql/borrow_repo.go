package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yushu/bookadmin/internal/domain/borrow"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// borrowRepository 借阅记录仓储实现(MySQL)
type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository 创建借阅记录仓储
func NewBorrowRepository(db *gorm.DB) borrow.Repository {
	return &borrowRepository{db: db}
}

// Create 创建借阅记录
func (r *borrowRepository) Create(ctx context.Context, b *borrow.Borrow) error {
	model := &BorrowModel{
		BookID:     b.BookID,
		UserID:     b.UserID,
		Status:     int(b.Status),
		BorrowDate: b.BorrowDate,
		ReturnDate: b.ReturnDate,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *borrowRepository) FindByID(ctx context.Context, id uint) (*borrow.Borrow, error) {
	var model BorrowModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrow.ErrBorrowNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toBorrowEntity(&model), nil
}

// Update 更新借阅记录(归还时写入状态和归还时间)
func (r *borrowRepository) Update(ctx context.Context, b *borrow.Borrow) error {
	result := dbFromContext(ctx, r.db).Model(&BorrowModel{ID: b.ID}).
		Select("status", "return_date").
		Updates(&BorrowModel{
			Status:     int(b.Status),
			ReturnDate: b.ReturnDate,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return borrow.ErrBorrowNotFound
	}

	return nil
}

// Delete 物理删除借阅记录
// BorrowModel没有DeletedAt字段,Delete直接生成DELETE语句。
// 调用方(应用层)负责在同一事务内先补偿库存
func (r *borrowRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&BorrowModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return borrow.ErrBorrowNotFound
	}

	return nil
}

// CountByBookID 统计某本书的借阅记录总数(删除图书前的引用检查)
func (r *borrowRepository) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&BorrowModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "统计借阅记录失败")
	}

	return count, nil
}

// CountActiveByBookID 统计某本书当前借出中的记录数
func (r *borrowRepository) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&BorrowModel{}).
		Where("book_id = ? AND status = ?", bookID, int(borrow.StatusBorrowed)).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "统计借出中记录失败")
	}

	return count, nil
}

// List 分页查询借阅记录
// 按书名/作者/借阅人筛选时JOIN books和users表,只取borrows.*
func (r *borrowRepository) List(ctx context.Context, params borrow.ListParams) ([]*borrow.Borrow, int64, error) {
	var models []BorrowModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&BorrowModel{})

	if params.BookName != "" || params.Author != "" {
		query = query.Joins("JOIN books ON books.id = borrows.book_id")
		if params.BookName != "" {
			query = query.Where("books.name LIKE ?", "%"+params.BookName+"%")
		}
		if params.Author != "" {
			query = query.Where("books.author LIKE ?", "%"+params.Author+"%")
		}
	}
	if params.UserName != "" {
		query = query.Joins("JOIN users ON users.id = borrows.user_id").
			Where("users.name LIKE ? OR users.nick_name LIKE ?",
				"%"+params.UserName+"%", "%"+params.UserName+"%")
	}
	if params.Status != nil {
		query = query.Where("borrows.status = ?", int(*params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅记录总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Select("borrows.*").
		Order("borrows.created_at DESC").
		Limit(params.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅记录列表失败")
	}

	borrows := make([]*borrow.Borrow, len(models))
	for i := range models {
		borrows[i] = toBorrowEntity(&models[i])
	}

	return borrows, total, nil
}

// toBorrowEntity GORM模型 → 领域实体
func toBorrowEntity(model *BorrowModel) *borrow.Borrow {
	return &borrow.Borrow{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		Status:     borrow.Status(model.Status),
		BorrowDate: model.BorrowDate,
		ReturnDate: model.ReturnDate,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
