package category

import (
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrParentNotFound 上级分类不存在
	ErrParentNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "上级分类不存在")
)
