package dto

// CreateCategoryRequest HTTP创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50" example:"文学"`
	Level       int    `json:"level" binding:"required,oneof=1 2" example:"1"`
	ParentLevel int    `json:"parent_level" binding:"omitempty,oneof=1" example:"1"`
	ParentID    uint   `json:"parent_id" example:"0"` // 二级分类必填
}

// UpdateCategoryRequest HTTP更新分类请求
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"omitempty,max=50"`
	Level       int    `json:"level" binding:"omitempty,oneof=1 2"`
	ParentLevel int    `json:"parent_level" binding:"omitempty,oneof=1"`
	ParentID    uint   `json:"parent_id"`
}

// ListCategoriesRequest HTTP分类列表请求
type ListCategoriesRequest struct {
	Level int  `form:"level" binding:"omitempty,oneof=1 2"` // 按层级过滤
	Tree  bool `form:"tree"`                                // true时返回分类树
}
