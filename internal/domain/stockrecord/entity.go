package stockrecord

import (
	"time"
)

// StockRecord 入库记录实体(聚合根)
// 设计说明:
// 1. 记录一次管理员补货:哪本书、谁操作、入了多少
// 2. Quantity必须为正整数,创建时即校验
// 3. 记录创建后不可修改,只能删除;删除时必须从库存中扣回Quantity
//    (如果这批库存已被借出导致扣回会出现负数,删除被拒绝)
type StockRecord struct {
	ID             uint
	BookID         uint   // 入库的图书ID
	AdminID        uint   // 操作的管理员用户ID
	Quantity       int    // 入库数量(正整数)
	SignatureImage string // 手写签名图片Base64或URL(可选)
	Remarks        string // 备注(可选)
	CreatedAt      time.Time
}

// NewStockRecord 创建入库记录(工厂方法)
// quantity必须>0,否则返回ErrInvalidQuantity
func NewStockRecord(bookID, adminID uint, quantity int, signatureImage, remarks string) (*StockRecord, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &StockRecord{
		BookID:         bookID,
		AdminID:        adminID,
		Quantity:       quantity,
		SignatureImage: signatureImage,
		Remarks:        remarks,
		CreatedAt:      time.Now(),
	}, nil
}
