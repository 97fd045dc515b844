package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的键(避免字符串键冲突)
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. fn返回error时自动ROLLBACK,返回nil时自动COMMIT,
//    保证任何错误路径上库存调整和记录写入一起回滚
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn函数内的所有Repository操作都会在同一事务中执行
//
// 使用示例(借书):
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 锁定图书行(SELECT FOR UPDATE,串行化同一本书的库存更新)
//	    b, err := bookRepo.LockByID(ctx, bookID)
//	    if err != nil {
//	        return err
//	    }
//	    // 2. 扣减库存(库存不足返回ErrOutOfStock,整个事务回滚)
//	    if _, err := bookRepo.AdjustStock(ctx, b.ID, -1); err != nil {
//	        return err
//	    }
//	    // 3. 创建借阅记录
//	    return borrowRepo.Create(ctx, borrow)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中,Repository的getDB方法会提取它
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// dbFromContext 从context提取事务DB,没有事务时返回默认DB
// 所有Repository的读写都经过它,保证同一事务内的操作共享连接和锁
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
