package mysql

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境只记录错误
// 4. 目录服务只读，AutoMigrate仅在配置开启时执行(本地开发)
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Error
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", "host", cfg.Database.Host, "db", cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&AuthorModel{},
		&BookModel{},
		&DiscountModel{},
		&ReviewModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用decimal(10,2)存储，Go侧使用shopspring/decimal
// 2. 分类、作者通过外键ID关联，查询时显式JOIN，不使用关联预加载
// 3. 软删除的图书不出现在任何目录查询中
type BookModel struct {
	ID         uint            `gorm:"primaryKey"`
	Title      string          `gorm:"size:200;not null;comment:书名"`
	Summary    string          `gorm:"type:text;comment:简介"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:定价"`
	CoverURL   string          `gorm:"size:500;comment:封面图片URL"`
	CategoryID uint            `gorm:"index;not null;comment:分类ID"`
	AuthorID   uint            `gorm:"index;not null;comment:作者ID"`
	CreatedAt  time.Time       `gorm:"comment:创建时间"`
	UpdatedAt  time.Time       `gorm:"comment:更新时间"`
	DeletedAt  gorm.DeletedAt  `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CategoryModel 分类
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// AuthorModel 作者
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null;comment:作者姓名"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// DiscountModel 限时折扣
// EndDate为NULL表示长期有效
type DiscountModel struct {
	ID            uint            `gorm:"primaryKey"`
	BookID        uint            `gorm:"index:idx_discount_active,priority:1;not null;comment:图书ID"`
	StartDate     time.Time       `gorm:"type:date;index:idx_discount_active,priority:2;not null;comment:开始日期"`
	EndDate       *time.Time      `gorm:"type:date;comment:结束日期"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:折扣价"`
}

// TableName 指定表名
func (DiscountModel) TableName() string {
	return "discounts"
}

// ReviewModel 评论
type ReviewModel struct {
	ID         uint      `gorm:"primaryKey"`
	BookID     uint      `gorm:"index:idx_review_book,priority:1;not null;comment:图书ID"`
	Title      string    `gorm:"size:200;comment:标题"`
	Details    string    `gorm:"type:text;comment:内容"`
	Rating     int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	ReviewDate time.Time `gorm:"index:idx_review_book,priority:2;not null;comment:评论时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}
