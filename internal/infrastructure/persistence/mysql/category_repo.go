package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yushu/bookadmin/internal/domain/category"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Level:       c.Level,
		ParentLevel: c.ParentLevel,
		ParentID:    c.ParentID,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// Update 更新分类
func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := dbFromContext(ctx, r.db).Model(&CategoryModel{ID: c.ID}).
		Select("name", "level", "parent_level", "parent_id").
		Updates(&CategoryModel{
			Name:        c.Name,
			Level:       c.Level,
			ParentLevel: c.ParentLevel,
			ParentID:    c.ParentID,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新分类失败")
	}

	if result.RowsAffected == 0 {
		var count int64
		dbFromContext(ctx, r.db).Model(&CategoryModel{}).Where("id = ?", c.ID).Count(&count)
		if count == 0 {
			return category.ErrCategoryNotFound
		}
	}

	return nil
}

// Delete 删除分类(连同下级分类一起删除)
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)

	result := db.Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}

	// 级联删除下级分类
	if err := db.Where("parent_id = ?", id).Delete(&CategoryModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除下级分类失败")
	}

	return nil
}

// ListAll 查询全部分类(平铺)
func (r *categoryRepository) ListAll(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	err := dbFromContext(ctx, r.db).Order("level ASC, created_at ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}

	return categories, nil
}

// ListByLevel 按层级查询分类
func (r *categoryRepository) ListByLevel(ctx context.Context, level int) ([]*category.Category, error) {
	var models []CategoryModel
	err := dbFromContext(ctx, r.db).
		Where("level = ?", level).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}

	return categories, nil
}

// ListRoots 查询一级分类,并把二级分类挂到对应的Children下
// 一次查全表在内存里装配,分类数量级很小,不做分页
func (r *categoryRepository) ListRoots(ctx context.Context) ([]*category.Category, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	roots := make([]*category.Category, 0)
	index := make(map[uint]*category.Category, len(all))

	for _, c := range all {
		if c.Level == 1 {
			index[c.ID] = c
			roots = append(roots, c)
		}
	}
	for _, c := range all {
		if c.Level == 1 {
			continue
		}
		if parent, ok := index[c.ParentID]; ok {
			parent.Children = append(parent.Children, c)
		}
	}

	return roots, nil
}

// toCategoryEntity GORM模型 → 领域实体
func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Level:       model.Level,
		ParentLevel: model.ParentLevel,
		ParentID:    model.ParentID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
