package book

import (
	"context"
)

// TxManager 事务管理器
// 消费方定义的小接口,生产实现是mysql.TxManager
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
