package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// 缓存结果标签
const (
	cacheHit    = "hit"
	cacheMiss   = "miss"
	cacheError  = "error"
	cacheBypass = "bypass" // 熔断中，未访问Redis
)

// CachedCatalogRepository 目录查询缓存装饰器(Cache-Aside)
//
// 设计说明：
//  1. 包装底层仓储，先查Redis，未命中再查数据库并回填
//  2. Key包含查询日期，折扣开始/结束当天自动换Key
//  3. Redis不可用时记录警告并直接查询数据库，数据库错误照常返回
//  4. Redis连续失败后熔断，熔断期间不再访问Redis
//  5. 不缓存错误结果(包括图书不存在)
type CachedCatalogRepository struct {
	next    catalog.Repository
	client  *redis.Client
	ttl     time.Duration
	prefix  string
	logger  *slog.Logger
	breaker *circuitbreaker.CircuitBreaker
}

// NewCachedCatalogRepository 创建缓存装饰器
func NewCachedCatalogRepository(next catalog.Repository, client *redis.Client, ttl time.Duration, prefix string, logger *slog.Logger) *CachedCatalogRepository {
	if prefix == "" {
		prefix = "catalog"
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &CachedCatalogRepository{next: next, client: client, ttl: ttl, prefix: prefix, logger: logger}
	c.breaker = circuitbreaker.New("redis-cache", circuitbreaker.Config{
		Interval:      30 * time.Second,
		Timeout:       10 * time.Second,
		OnStateChange: c.logStateChange,
	})
	return c
}

// WithBreaker 替换默认熔断器
func (c *CachedCatalogRepository) WithBreaker(cb *circuitbreaker.CircuitBreaker) *CachedCatalogRepository {
	c.breaker = cb
	return c
}

func (c *CachedCatalogRepository) logStateChange(name string, from, to circuitbreaker.State) {
	c.logger.Warn("缓存熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
}

var _ catalog.Repository = (*CachedCatalogRepository)(nil)

type listPayload struct {
	Items []catalog.Entry `json:"items"`
	Total int64           `json:"total"`
}

// List 分页列表
func (c *CachedCatalogRepository) List(ctx context.Context, q catalog.ListQuery, today time.Time) ([]catalog.Entry, int64, error) {
	key := c.listKey(q, today)

	var cached listPayload
	if c.get(ctx, key, &cached) {
		return cached.Items, cached.Total, nil
	}

	items, total, err := c.next.List(ctx, q, today)
	if err != nil {
		return nil, 0, err
	}
	c.set(ctx, key, listPayload{Items: items, Total: total})
	return items, total, nil
}

// Featured 精选
func (c *CachedCatalogRepository) Featured(ctx context.Context, opt catalog.FeaturedOption, k int, today time.Time) ([]catalog.Entry, error) {
	key := fmt.Sprintf("%s:featured:%s:%s:%d", c.prefix, day(today), opt, k)
	return c.entries(ctx, key, func() ([]catalog.Entry, error) {
		return c.next.Featured(ctx, opt, k, today)
	})
}

// TopDiscounted 折扣榜
func (c *CachedCatalogRepository) TopDiscounted(ctx context.Context, k int, today time.Time) ([]catalog.Entry, error) {
	key := fmt.Sprintf("%s:top:%s:%d", c.prefix, day(today), k)
	return c.entries(ctx, key, func() ([]catalog.Entry, error) {
		return c.next.TopDiscounted(ctx, k, today)
	})
}

// FindByID 图书详情
func (c *CachedCatalogRepository) FindByID(ctx context.Context, id uint, today time.Time) (*catalog.Entry, error) {
	key := fmt.Sprintf("%s:book:%s:%d", c.prefix, day(today), id)

	var cached catalog.Entry
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	entry, err := c.next.FindByID(ctx, id, today)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, entry)
	return entry, nil
}

// CategoryNames 分类名称(与日期无关)
func (c *CachedCatalogRepository) CategoryNames(ctx context.Context) ([]string, error) {
	return c.names(ctx, c.prefix+":categories", c.next.CategoryNames)
}

// AuthorNames 作者名称
func (c *CachedCatalogRepository) AuthorNames(ctx context.Context) ([]string, error) {
	return c.names(ctx, c.prefix+":authors", c.next.AuthorNames)
}

func (c *CachedCatalogRepository) entries(ctx context.Context, key string, load func() ([]catalog.Entry, error)) ([]catalog.Entry, error) {
	var cached []catalog.Entry
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := load()
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, entries)
	return entries, nil
}

func (c *CachedCatalogRepository) names(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	var cached []string
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	names, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, names)
	return names, nil
}

// get 读取缓存，命中返回true
// redis.Nil不计入熔断失败
func (c *CachedCatalogRepository) get(ctx context.Context, key string, dest any) bool {
	var val []byte
	err := c.breaker.Execute(func() error {
		v, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		val = v
		return err
	})
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordCacheResult(cacheBypass)
		return false
	case err != nil:
		metrics.RecordCacheResult(cacheError)
		c.logger.WarnContext(ctx, "读取目录缓存失败", "key", key, "error", err)
		return false
	case val == nil:
		metrics.RecordCacheResult(cacheMiss)
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.RecordCacheResult(cacheError)
		c.logger.WarnContext(ctx, "目录缓存反序列化失败", "key", key, "error", err)
		return false
	}

	metrics.RecordCacheResult(cacheHit)
	return true
}

func (c *CachedCatalogRepository) set(ctx context.Context, key string, value any) {
	val, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "目录缓存序列化失败", "key", key, "error", err)
		return
	}
	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, key, val, c.ttl).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		c.logger.WarnContext(ctx, "写入目录缓存失败", "key", key, "error", err)
	}
}

// listKey 列表缓存key
// 格式：{prefix}:list:{date}:{page}:{pageSize}:{sort}:{category}:{author}:{minRating}
func (c *CachedCatalogRepository) listKey(q catalog.ListQuery, today time.Time) string {
	return fmt.Sprintf("%s:list:%s:%d:%d:%s:%s:%s:%d",
		c.prefix, day(today), q.Page, q.PageSize, q.SortBy,
		url.QueryEscape(q.Category), url.QueryEscape(q.Author), q.MinRating)
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}
