package stockrecord

import (
	"context"
)

// TxManager 事务管理器
// 消费方定义的小接口,生产实现是mysql.TxManager
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布器
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// NoopPublisher 空实现(MQ未启用时使用)
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(routingKey string, message interface{}) error {
	return nil
}

// StockInEvent 入库事件
type StockInEvent struct {
	RecordID uint `json:"record_id"`
	BookID   uint `json:"book_id"`
	AdminID  uint `json:"admin_id"`
	Quantity int  `json:"quantity"`
	Stock    int  `json:"stock"` // 入库后的库存
}
