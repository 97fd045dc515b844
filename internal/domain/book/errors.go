package book

import (
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookNoDuplicate 图书编号已存在
	ErrBookNoDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书编号已存在")

	// ErrOutOfStock 库存不足(扣减会导致库存为负)
	ErrOutOfStock = apperrors.New(apperrors.ErrCodeOutOfStock, "图书库存不足")

	// ErrInvalidStock 无效的库存基准(创建/编辑图书时库存不能为负)
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrBookReferenced 图书仍被借阅记录或入库记录引用,不能删除
	ErrBookReferenced = apperrors.New(apperrors.ErrCodeBookReferenced, "图书存在借阅或入库记录，无法删除")
)
