package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yushu/bookadmin/internal/domain/stockrecord"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// stockRecordRepository 入库记录仓储实现(MySQL)
type stockRecordRepository struct {
	db *gorm.DB
}

// NewStockRecordRepository 创建入库记录仓储
func NewStockRecordRepository(db *gorm.DB) stockrecord.Repository {
	return &stockRecordRepository{db: db}
}

// Create 创建入库记录
func (r *stockRecordRepository) Create(ctx context.Context, record *stockrecord.StockRecord) error {
	model := &StockRecordModel{
		BookID:         record.BookID,
		AdminID:        record.AdminID,
		Quantity:       record.Quantity,
		SignatureImage: record.SignatureImage,
		Remarks:        record.Remarks,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建入库记录失败")
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt

	return nil
}

// FindByID 根据ID查找入库记录
func (r *stockRecordRepository) FindByID(ctx context.Context, id uint) (*stockrecord.StockRecord, error) {
	var model StockRecordModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stockrecord.ErrStockRecordNotFound
		}
		return nil, apperrors.Wrap(err, "查询入库记录失败")
	}

	return toStockRecordEntity(&model), nil
}

// Delete 物理删除入库记录
// 调用方(应用层)负责在同一事务内先扣回对应库存
func (r *stockRecordRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&StockRecordModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除入库记录失败")
	}

	if result.RowsAffected == 0 {
		return stockrecord.ErrStockRecordNotFound
	}

	return nil
}

// CountByBookID 统计某本书的入库记录数(删除图书前的引用检查)
func (r *stockRecordRepository) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&StockRecordModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "统计入库记录失败")
	}

	return count, nil
}

// SumQuantityByBookID 汇总某本书的累计入库数量(对账用)
func (r *stockRecordRepository) SumQuantityByBookID(ctx context.Context, bookID uint) (int64, error) {
	var sum int64
	err := dbFromContext(ctx, r.db).Model(&StockRecordModel{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "汇总入库数量失败")
	}

	return sum, nil
}

// List 分页查询入库记录
func (r *stockRecordRepository) List(ctx context.Context, params stockrecord.ListParams) ([]*stockrecord.StockRecord, int64, error) {
	var models []StockRecordModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&StockRecordModel{})

	if params.BookName != "" {
		query = query.Joins("JOIN books ON books.id = stock_records.book_id").
			Where("books.name LIKE ?", "%"+params.BookName+"%")
	}
	if params.AdminName != "" {
		query = query.Joins("JOIN users ON users.id = stock_records.admin_id").
			Where("users.name LIKE ? OR users.nick_name LIKE ?",
				"%"+params.AdminName+"%", "%"+params.AdminName+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询入库记录总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Select("stock_records.*").
		Order("stock_records.created_at DESC").
		Limit(params.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询入库记录列表失败")
	}

	records := make([]*stockrecord.StockRecord, len(models))
	for i := range models {
		records[i] = toStockRecordEntity(&models[i])
	}

	return records, total, nil
}

// toStockRecordEntity GORM模型 → 领域实体
func toStockRecordEntity(model *StockRecordModel) *stockrecord.StockRecord {
	return &stockrecord.StockRecord{
		ID:             model.ID,
		BookID:         model.BookID,
		AdminID:        model.AdminID,
		Quantity:       model.Quantity,
		SignatureImage: model.SignatureImage,
		Remarks:        model.Remarks,
		CreatedAt:      model.CreatedAt,
	}
}
