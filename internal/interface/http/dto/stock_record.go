package dto

// CreateStockRecordRequest HTTP入库请求
// signature_image是管理员手写签名的base64图片,作为入库凭证的一部分
type CreateStockRecordRequest struct {
	BookID         uint   `json:"book_id" binding:"required" example:"1"`
	Quantity       int    `json:"quantity" binding:"required,min=1" example:"10"`
	SignatureImage string `json:"signature_image" binding:"omitempty"`
	Remarks        string `json:"remarks" binding:"omitempty,max=500"`
}

// ListStockRecordsRequest HTTP入库记录列表请求
type ListStockRecordsRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	BookName  string `form:"book_name" binding:"omitempty,max=200"`
	AdminName string `form:"admin_name" binding:"omitempty,max=50"`
}
