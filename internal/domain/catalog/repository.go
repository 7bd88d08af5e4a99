package catalog

import (
	"context"
	"time"
)

// Repository 目录查询仓储接口
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(MySQL显式JOIN、Redis缓存装饰器)
// 2. today由调用方传入，仓储不读取系统时间
// 3. 底层存储失败返回ErrCodeDataAccess错误，不返回空结果掩盖失败
type Repository interface {
	// List 过滤+排序+分页，返回当前页与过滤后总数(去重)
	List(ctx context.Context, q ListQuery, today time.Time) ([]Entry, int64, error)

	// Featured 精选前k本
	Featured(ctx context.Context, opt FeaturedOption, k int, today time.Time) ([]Entry, error)

	// TopDiscounted 优惠金额最高的前k本
	TopDiscounted(ctx context.Context, k int, today time.Time) ([]Entry, error)

	// FindByID 查询单本图书，不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint, today time.Time) (*Entry, error)

	// CategoryNames 所有分类名称(去重、升序)
	CategoryNames(ctx context.Context) ([]string, error)

	// AuthorNames 所有作者名称(去重、升序)
	AuthorNames(ctx context.Context) ([]string, error)
}
