package borrow

import (
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrBorrowNotFound 借阅记录不存在
	ErrBorrowNotFound = apperrors.New(apperrors.ErrCodeBorrowNotFound, "借阅记录不存在")

	// ErrAlreadyReturned 重复归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该图书已归还，请勿重复操作")
)
