package mysql

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 只读快照：列表的总数与当前页在同一个只读事务中读取，二者一致
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// ReadSnapshot 在只读事务中执行fn
// fn内通过getDB(ctx)取得的DB都属于同一事务；已在事务中时直接复用
//
// 使用示例:
//
//	err := txManager.ReadSnapshot(ctx, func(ctx context.Context) error {
//	    if err := getDB(ctx, db).Table(...).Count(&total).Error; err != nil {
//	        return err
//	    }
//	    return getDB(ctx, db).Table(...).Scan(&rows).Error
//	})
func (m *TxManager) ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, &sql.TxOptions{ReadOnly: true})
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
