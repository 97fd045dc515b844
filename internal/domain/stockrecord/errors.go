package stockrecord

import (
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// 入库领域错误定义
var (
	// ErrStockRecordNotFound 入库记录不存在
	ErrStockRecordNotFound = apperrors.New(apperrors.ErrCodeStockRecordNotFound, "入库记录不存在")

	// ErrInvalidQuantity 入库数量必须为正整数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "入库数量必须大于0")
)
