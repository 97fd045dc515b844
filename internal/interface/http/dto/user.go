package dto

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50" example:"admin"`
	Password string `json:"password" binding:"required,min=6,max=20" example:"admin123"`
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest HTTP创建用户请求(管理员操作)
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50" example:"zhangsan"`
	Password string `json:"password" binding:"required,min=6,max=20" example:"123456"`
	NickName string `json:"nick_name" binding:"omitempty,max=50" example:"张三"`
	Role     string `json:"role" binding:"required,oneof=admin user" example:"user"`
	Sex      string `json:"sex" binding:"omitempty,oneof=male female" example:"male"`
}

// UpdateUserRequest HTTP更新用户请求(管理员操作)
// password为空表示不修改密码
type UpdateUserRequest struct {
	NickName string `json:"nick_name" binding:"omitempty,max=50"`
	Password string `json:"password" binding:"omitempty,min=6,max=20"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
	Status   string `json:"status" binding:"omitempty,oneof=on off"`
	Sex      string `json:"sex" binding:"omitempty,oneof=male female"`
}

// ListUsersRequest HTTP用户列表请求
type ListUsersRequest struct {
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	Name     string  `form:"name" binding:"omitempty,max=50"`
	Status   *string `form:"status" binding:"omitempty,oneof=on off"`
	All      bool    `form:"all"`
}
