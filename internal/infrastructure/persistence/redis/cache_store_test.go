package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/testutil"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// countingRepository 统计底层仓储调用次数
type countingRepository struct {
	*testutil.CatalogRepository
	calls int
}

func (r *countingRepository) List(ctx context.Context, q catalog.ListQuery, today time.Time) ([]catalog.Entry, int64, error) {
	r.calls++
	return r.CatalogRepository.List(ctx, q, today)
}

func (r *countingRepository) FindByID(ctx context.Context, id uint, today time.Time) (*catalog.Entry, error) {
	r.calls++
	return r.CatalogRepository.FindByID(ctx, id, today)
}

func (r *countingRepository) CategoryNames(ctx context.Context) ([]string, error) {
	r.calls++
	return r.CatalogRepository.CategoryNames(ctx)
}

func newTestCache(t *testing.T) (*CachedCatalogRepository, *countingRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	next := &countingRepository{CatalogRepository: testutil.NewCatalogRepository()}
	return NewCachedCatalogRepository(next, client, time.Minute, "test", nil), next, mr
}

func TestCachedCatalogRepository_List(t *testing.T) {
	cache, next, mr := newTestCache(t)
	ctx := context.Background()
	q := catalog.ListQuery{Page: 1, PageSize: 5, SortBy: catalog.SortOnSale, Category: testutil.CategoryFiction}

	first, total, err := cache.List(ctx, q, testutil.Today)
	require.NoError(t, err)

	second, cachedTotal, err := cache.List(ctx, q, testutil.Today)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls, "第二次查询应命中缓存")
	assert.Equal(t, total, cachedTotal)
	assert.Equal(t, testutil.IDs(first), testutil.IDs(second))
	assert.True(t, first[0].EffectivePrice.Equal(second[0].EffectivePrice))
	assert.True(t, mr.Exists("test:list:2026-10-14:1:5:default:Test+Fiction::0"))

	ttl := mr.TTL("test:list:2026-10-14:1:5:default:Test+Fiction::0")
	assert.Equal(t, time.Minute, ttl)
}

// TestCachedCatalogRepository_KeyIncludesDate 日期变化后不复用前一天的结果
func TestCachedCatalogRepository_KeyIncludesDate(t *testing.T) {
	cache, next, _ := newTestCache(t)
	ctx := context.Background()

	_, err := cache.FindByID(ctx, 1, testutil.Today)
	require.NoError(t, err)
	entry, err := cache.FindByID(ctx, 1, testutil.Today.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
	assert.True(t, entry.DiscountAmount.IsZero(), "第三天1号书折扣已结束")
}

func TestCachedCatalogRepository_DoesNotCacheErrors(t *testing.T) {
	cache, next, mr := newTestCache(t)
	ctx := context.Background()

	_, err := cache.FindByID(ctx, 999, testutil.Today)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	_, err = cache.FindByID(ctx, 999, testutil.Today)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)

	assert.Equal(t, 2, next.calls)
	assert.Empty(t, mr.Keys())

	next.Err = apperrors.WrapCode(errors.New("down"), apperrors.ErrCodeDataAccess, "查询失败")
	_, err = cache.CategoryNames(ctx)
	assert.True(t, apperrors.IsDataAccess(err))
}

// TestCachedCatalogRepository_RedisDown Redis不可用时回源查询
func TestCachedCatalogRepository_RedisDown(t *testing.T) {
	cache, next, mr := newTestCache(t)
	mr.Close()

	names, err := cache.CategoryNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 3)
	assert.Equal(t, 1, next.calls)
}

// TestCachedCatalogRepository_BreakerOpens Redis连续失败后熔断，不再访问Redis
func TestCachedCatalogRepository_BreakerOpens(t *testing.T) {
	cache, next, mr := newTestCache(t)
	breaker := circuitbreaker.New("test-cache", circuitbreaker.Config{
		Timeout:     time.Hour,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
	cache.WithBreaker(breaker)
	mr.Close()

	ctx := context.Background()
	_, err := cache.CategoryNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())

	names, err := cache.CategoryNames(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 3)
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, uint32(0), breaker.Counts().Requests, "熔断期间不访问Redis")
}

// TestCachedCatalogRepository_MissDoesNotTrip 未命中不算失败
func TestCachedCatalogRepository_MissDoesNotTrip(t *testing.T) {
	cache, _, _ := newTestCache(t)
	breaker := circuitbreaker.New("test-cache", circuitbreaker.Config{
		Timeout:     time.Hour,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	cache.WithBreaker(breaker)

	_, err := cache.FindByID(context.Background(), 2, testutil.Today)
	require.NoError(t, err)
	assert.Equal(t, circuitbreaker.StateClosed, breaker.State())
}
