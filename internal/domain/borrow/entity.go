package borrow

import (
	"time"
)

// Status 借阅状态
// 设计说明:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 状态机只有一条合法转换:借出中 → 已归还,没有逆向转换
type Status int

const (
	StatusBorrowed Status = 1 // 借出中(创建即进入,唯一初始状态)
	StatusReturned Status = 2 // 已归还(终态,只能由归还操作进入)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusBorrowed:
		return "借出中"
	case StatusReturned:
		return "已归还"
	default:
		return "未知状态"
	}
}

// Borrow 借阅记录实体(聚合根)
// 设计说明:
// 1. BookID/UserID创建后不可变,只保存ID不跨聚合引用实体
// 2. 核心不变式:ReturnDate非空 当且仅当 Status==StatusReturned
//    (MarkReturned是唯一同时写这两个字段的入口,保证不变式不被破坏)
// 3. 一条借阅记录占用一个库存单位,归还或删除时必须归还该单位
type Borrow struct {
	ID         uint
	BookID     uint       // 借阅的图书ID
	UserID     uint       // 借阅人用户ID
	Status     Status     // 借阅状态
	BorrowDate time.Time  // 借出时间(创建时写入,之后不再修改)
	ReturnDate *time.Time // 归还时间(借出中为nil,归还时写入一次)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBorrow 创建新借阅记录(工厂方法)
// 初始状态固定为StatusBorrowed,借出时间为当前时间
func NewBorrow(bookID, userID uint) *Borrow {
	now := time.Now()
	return &Borrow{
		BookID:     bookID,
		UserID:     userID,
		Status:     StatusBorrowed,
		BorrowDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsReturned 是否已归还
func (b *Borrow) IsReturned() bool {
	return b.Status == StatusReturned
}

// MarkReturned 归还(状态转换)
// 业务规则:已归还的记录不能重复归还(防止库存被重复加回)
func (b *Borrow) MarkReturned() error {
	if b.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	now := time.Now()
	b.Status = StatusReturned
	b.ReturnDate = &now
	b.UpdatedAt = now
	return nil
}

// HoldsStock 该记录当前是否占用一个库存单位
// 借出中的记录删除时需要补偿+1库存,已归还的记录在归还时已经补偿过
func (b *Borrow) HoldsStock() bool {
	return b.Status == StatusBorrowed
}
