package user

import (
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrNameDuplicate 用户名已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeNameDuplicate, "用户名已存在")

	// ErrUserDisabled 用户已被禁用
	ErrUserDisabled = apperrors.New(apperrors.ErrCodeUserDisabled, "用户已被禁用")

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword, "密码强度不足（需6-20位）")

	// ErrInvalidRole 非法的角色值
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的用户角色")
)
