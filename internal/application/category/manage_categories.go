package category

import (
	"context"

	"github.com/yushu/bookadmin/internal/domain/category"
)

// ManageCategoriesUseCase 分类管理用例(管理员操作)
type ManageCategoriesUseCase struct {
	categoryRepo category.Repository
}

// NewManageCategoriesUseCase 创建分类管理用例
func NewManageCategoriesUseCase(categoryRepo category.Repository) *ManageCategoriesUseCase {
	return &ManageCategoriesUseCase{categoryRepo: categoryRepo}
}

// CreateCategoryRequest 创建分类请求DTO
type CreateCategoryRequest struct {
	Name        string
	Level       int  // 1或2
	ParentLevel int  // 二级分类填1
	ParentID    uint // 二级分类必填
}

// CreateCategoryResponse 创建分类响应DTO
type CreateCategoryResponse struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
}

// CreateCategory 创建分类
// 二级分类要求上级分类存在且为一级
func (uc *ManageCategoriesUseCase) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CreateCategoryResponse, error) {
	if req.Level == 2 {
		parent, err := uc.categoryRepo.FindByID(ctx, req.ParentID)
		if err != nil {
			return nil, category.ErrParentNotFound
		}
		if parent.Level != 1 {
			return nil, category.ErrParentNotFound
		}
	}

	c := category.NewCategory(req.Name, req.Level, req.ParentLevel, req.ParentID)
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return &CreateCategoryResponse{
		CategoryID: c.ID,
		Name:       c.Name,
		Level:      c.Level,
	}, nil
}

// UpdateCategoryRequest 更新分类请求DTO
type UpdateCategoryRequest struct {
	CategoryID  uint
	Name        string
	Level       int
	ParentLevel int
	ParentID    uint
}

// UpdateCategory 更新分类
func (uc *ManageCategoriesUseCase) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) error {
	c, err := uc.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}

	if req.Level == 2 || (req.Level == 0 && c.Level == 2) {
		parentID := req.ParentID
		if parentID == 0 {
			parentID = c.ParentID
		}
		parent, err := uc.categoryRepo.FindByID(ctx, parentID)
		if err != nil || parent.Level != 1 {
			return category.ErrParentNotFound
		}
	}

	c.UpdateInfo(req.Name, req.Level, req.ParentLevel, req.ParentID)
	return uc.categoryRepo.Update(ctx, c)
}

// DeleteCategory 删除分类(连同下级分类)
func (uc *ManageCategoriesUseCase) DeleteCategory(ctx context.Context, categoryID uint) error {
	return uc.categoryRepo.Delete(ctx, categoryID)
}

// CategoryItem 分类DTO(树形)
type CategoryItem struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Level    int            `json:"level"`
	ParentID uint           `json:"parent_id"`
	Children []CategoryItem `json:"children,omitempty"`
}

// ListTree 查询分类树(一级分类带下级)
func (uc *ManageCategoriesUseCase) ListTree(ctx context.Context) ([]CategoryItem, error) {
	roots, err := uc.categoryRepo.ListRoots(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryItem, len(roots))
	for i, root := range roots {
		item := CategoryItem{
			ID:       root.ID,
			Name:     root.Name,
			Level:    root.Level,
			ParentID: root.ParentID,
		}
		for _, child := range root.Children {
			item.Children = append(item.Children, CategoryItem{
				ID:       child.ID,
				Name:     child.Name,
				Level:    child.Level,
				ParentID: child.ParentID,
			})
		}
		items[i] = item
	}

	return items, nil
}

// ListByLevel 按层级查询分类(下拉框场景)
func (uc *ManageCategoriesUseCase) ListByLevel(ctx context.Context, level int) ([]CategoryItem, error) {
	categories, err := uc.categoryRepo.ListByLevel(ctx, level)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryItem, len(categories))
	for i, c := range categories {
		items[i] = CategoryItem{
			ID:       c.ID,
			Name:     c.Name,
			Level:    c.Level,
			ParentID: c.ParentID,
		}
	}

	return items, nil
}
