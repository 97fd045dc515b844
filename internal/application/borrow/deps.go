package borrow

import (
	"context"
)

// TxManager 事务管理器
// 消费方定义的小接口,生产实现是mysql.TxManager,
// 测试时可以用内存实现替代
type TxManager interface {
	// Transaction 在事务中执行fn,fn返回错误则回滚
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布器
// 生产实现是mq.Publisher(RabbitMQ),未启用MQ时注入NoopPublisher
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// NoopPublisher 空实现(MQ未启用时使用)
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(routingKey string, message interface{}) error {
	return nil
}

// BorrowCreatedEvent 借阅创建事件
type BorrowCreatedEvent struct {
	BorrowID uint   `json:"borrow_id"`
	BookID   uint   `json:"book_id"`
	UserID   uint   `json:"user_id"`
	Stock    int    `json:"stock"` // 扣减后的库存
	BorrowAt string `json:"borrow_at"`
}

// BorrowReturnedEvent 归还事件
type BorrowReturnedEvent struct {
	BorrowID uint   `json:"borrow_id"`
	BookID   uint   `json:"book_id"`
	UserID   uint   `json:"user_id"`
	Stock    int    `json:"stock"` // 回补后的库存
	ReturnAt string `json:"return_at"`
}
