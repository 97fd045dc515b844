package borrow

import (
	"testing"
)

// TestNewBorrow 测试借阅记录创建
func TestNewBorrow(t *testing.T) {
	b := NewBorrow(1, 2)

	if b.Status != StatusBorrowed {
		t.Errorf("新借阅记录状态期望为借出中，实际%s", b.Status)
	}
	if b.ReturnDate != nil {
		t.Error("新借阅记录的归还时间应该为nil")
	}
	if b.BorrowDate.IsZero() {
		t.Error("借出时间不应该为零值")
	}
	if !b.HoldsStock() {
		t.Error("借出中的记录应该占用一个库存单位")
	}
}

// TestBorrow_MarkReturned 测试归还状态转换
func TestBorrow_MarkReturned(t *testing.T) {
	b := NewBorrow(1, 2)

	if err := b.MarkReturned(); err != nil {
		t.Fatalf("首次归还期望成功，实际失败: %v", err)
	}

	if b.Status != StatusReturned {
		t.Errorf("归还后状态期望为已归还，实际%s", b.Status)
	}
	if b.ReturnDate == nil {
		t.Error("归还后ReturnDate不应该为nil")
	}
	if b.HoldsStock() {
		t.Error("已归还的记录不应该再占用库存")
	}
}

// TestBorrow_MarkReturnedTwice 测试重复归还被拒绝
// 重复归还一旦放行，库存会被同一条记录加回两次
func TestBorrow_MarkReturnedTwice(t *testing.T) {
	b := NewBorrow(1, 2)

	if err := b.MarkReturned(); err != nil {
		t.Fatalf("首次归还失败: %v", err)
	}
	firstReturnDate := *b.ReturnDate

	err := b.MarkReturned()
	if err != ErrAlreadyReturned {
		t.Errorf("重复归还期望返回ErrAlreadyReturned，实际%v", err)
	}

	// 归还时间不应该被第二次调用覆盖
	if !b.ReturnDate.Equal(firstReturnDate) {
		t.Error("重复归还不应该修改归还时间")
	}
}

// TestStatus_String 测试状态文本
func TestStatus_String(t *testing.T) {
	if StatusBorrowed.String() != "借出中" {
		t.Errorf("借出中状态文本错误: %s", StatusBorrowed)
	}
	if StatusReturned.String() != "已归还" {
		t.Errorf("已归还状态文本错误: %s", StatusReturned)
	}
	if Status(99).String() != "未知状态" {
		t.Errorf("非法状态文本错误: %s", Status(99))
	}
}
