package dto

// CreateBookRequest HTTP创建图书请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值/长度范围校验
type CreateBookRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"平凡的世界"`
	Author      string `json:"author" binding:"required,max=100" example:"路遥"`
	BookNo      string `json:"book_no" binding:"required,max=32" example:"BK20240001"`
	Cover       string `json:"cover" binding:"omitempty,max=500" example:"https://example.com/cover.jpg"`
	Description string `json:"description" binding:"max=5000" example:"茅盾文学奖作品"`
	Stock       int    `json:"stock" binding:"min=0" example:"10"`
	CategoryID  uint   `json:"category_id" example:"1"`
	PublishAt   string `json:"publish_at" binding:"omitempty,datetime=2006-01-02" example:"1986-12-01"`
}

// UpdateBookRequest HTTP更新图书请求
// stock传null表示不调整库存基准
type UpdateBookRequest struct {
	Name        string `json:"name" binding:"omitempty,max=200"`
	Author      string `json:"author" binding:"omitempty,max=100"`
	BookNo      string `json:"book_no" binding:"omitempty,max=32"`
	Cover       string `json:"cover" binding:"omitempty,max=500"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	CategoryID  uint   `json:"category_id"`
	PublishAt   string `json:"publish_at" binding:"omitempty,datetime=2006-01-02"`
	Stock       *int   `json:"stock" binding:"omitempty,min=0"` // 新的库存基准
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Name     string `form:"name" binding:"omitempty,max=200"`
	Author   string `form:"author" binding:"omitempty,max=100"`
	Category uint   `form:"category"`
	All      bool   `form:"all"` // true时返回全部(下拉框场景)
}
