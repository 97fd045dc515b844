package user

import (
	"time"
)

// Role 用户角色
// 设计说明:角色建模为枚举类型而非裸字符串,
// 权限判断用Role.IsAdmin()而不是到处写字符串比较
type Role string

const (
	RoleAdmin Role = "admin" // 管理员(可管理用户、执行入库)
	RoleUser  Role = "user"  // 普通用户
)

// IsAdmin 是否具有管理员能力
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid 是否为合法角色值
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Status 用户状态
type Status string

const (
	StatusOn  Status = "on"  // 启用
	StatusOff Status = "off" // 禁用(禁止登录)
)

// Valid 是否为合法状态值
func (s Status) Valid() bool {
	return s == StatusOn || s == StatusOff
}

// Sex 用户性别
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// User 用户实体(聚合根)
// 1. 密码已加密存储(bcrypt),不应该有GetPassword()等方法暴露明文
// 2. 领域实体不依赖GORM tag(infrastructure层的Repository实现时会处理映射)
type User struct {
	ID        uint
	Name      string // 用户名(登录名,唯一)
	NickName  string // 昵称
	Password  string // bcrypt哈希值
	Role      Role
	Status    Status
	Sex       Sex
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(name, hashedPassword, nickName string, role Role, sex Sex) *User {
	now := time.Now()
	return &User{
		Name:      name,
		NickName:  nickName,
		Password:  hashedPassword,
		Role:      role,
		Status:    StatusOn,
		Sex:       sex,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive 用户是否可登录
func (u *User) IsActive() bool {
	return u.Status == StatusOn
}

// UpdateProfile 更新用户资料(领域行为)
func (u *User) UpdateProfile(nickName string, role Role, status Status, sex Sex) {
	if nickName != "" {
		u.NickName = nickName
	}
	if role.Valid() {
		u.Role = role
	}
	if status.Valid() {
		u.Status = status
	}
	if sex != "" {
		u.Sex = sex
	}
	u.UpdatedAt = time.Now()
}
