package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体
// 价格使用decimal定点数(两位小数)，避免浮点误差
type Book struct {
	ID         uint
	Title      string
	Summary    string
	Price      decimal.Decimal // 定价
	CoverURL   string
	CategoryID uint
	AuthorID   uint
}

// Category 图书分类
type Category struct {
	ID   uint
	Name string
}

// Author 作者
type Author struct {
	ID   uint
	Name string
}

// Discount 限时折扣
// EndDate为nil表示长期有效
type Discount struct {
	ID        uint
	BookID    uint
	StartDate time.Time
	EndDate   *time.Time
	Price     decimal.Decimal // 折扣价
}

// Entry 目录条目：图书 + 分类/作者名称 + 实时价格 + 热度
// 每次查询重新计算，不持久化
type Entry struct {
	Book
	CategoryName string
	AuthorName   string
	PriceAnnotation
	Popularity
}
