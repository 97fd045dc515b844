package dto

// CreateBorrowRequest HTTP借书请求
// 借阅人默认为当前登录用户,管理员可以代他人登记(传user_id)
type CreateBorrowRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
	UserID uint `json:"user_id" example:"2"` // 0表示当前登录用户
}

// ListBorrowsRequest HTTP借阅列表请求
type ListBorrowsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	BookName string `form:"book_name" binding:"omitempty,max=200"`
	UserName string `form:"user_name" binding:"omitempty,max=50"`
	Author   string `form:"author" binding:"omitempty,max=100"`
	Status   *int   `form:"status" binding:"omitempty,oneof=1 2"` // 1借出中 2已归还
}
