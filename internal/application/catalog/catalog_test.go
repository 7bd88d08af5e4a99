package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/testutil"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func testRates() *currency.Store {
	defaults := currency.Defaults{Country: "us", Symbol: "$"}
	table := currency.NewTable(map[string]currency.Rate{
		"us": {Symbol: "$", Rate: decimal.NewFromInt(1)},
		"jp": {Symbol: "¥", Rate: decimal.NewFromInt(110)},
		"gb": {Symbol: "£", Rate: decimal.RequireFromString("0.785")},
	}, defaults)
	return currency.NewStore(table, defaults)
}

type fixture struct {
	list     *ListBooksUseCase
	featured *FeaturedBooksUseCase
	detail   *GetBookUseCase
	facets   *FacetsUseCase
	rates    *currency.Store
	repo     *testutil.CatalogRepository
}

func newFixture() *fixture {
	repo := testutil.NewCatalogRepository()
	svc := catalog.NewService(repo, clock.NewFixedClock(testutil.Now), nil)
	reviews := review.NewService(testutil.NewReviewRepository())
	rates := testRates()

	return &fixture{
		list:     NewListBooksUseCase(svc, rates),
		featured: NewFeaturedBooksUseCase(svc, rates),
		detail:   NewGetBookUseCase(svc, reviews, rates),
		facets:   NewFacetsUseCase(svc),
		rates:    rates,
		repo:     repo,
	}
}

func viewIDs(views []BookView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestListBooksUseCase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("默认排序与分页", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, []uint{5, 1, 7, 3, 10}, viewIDs(resp.Items))
		assert.Equal(t, int64(12), resp.Paging.TotalItems)
		assert.Equal(t, 3, resp.Paging.TotalPages)
		assert.True(t, resp.Paging.HasNext)
	})

	t.Run("按价格排序并过滤分类", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{
			Page: 1, PageSize: 20, SortBy: "price_asc", Category: testutil.CategoryFiction,
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 9, 5, 7, 11, 2}, viewIDs(resp.Items))
	})

	t.Run("价格按国家换算", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5, Country: "JP"})
		require.NoError(t, err)
		first := resp.Items[0]
		assert.Equal(t, uint(5), first.ID)
		assert.Equal(t, "6600.00", first.ListPrice)
		assert.Equal(t, "3300.00", first.EffectivePrice)
		assert.Equal(t, "3300.00", first.DiscountAmount)
		assert.Equal(t, "¥", first.CurrencySymbol)
	})

	t.Run("未知国家使用默认币种", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5, Country: "zz"})
		require.NoError(t, err)
		assert.Equal(t, "60.00", resp.Items[0].ListPrice)
		assert.Equal(t, "$", resp.Items[0].CurrencySymbol)
	})

	t.Run("平均分保留两位小数", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, uint(1), resp.Items[1].ID)
		assert.Equal(t, 4.5, resp.Items[1].AvgRating)
		assert.Equal(t, int64(2), resp.Items[1].ReviewCount)
		assert.Equal(t, testutil.CategoryFiction, resp.Items[1].CategoryName)
		assert.Equal(t, testutil.AuthorAlice, resp.Items[1].AuthorName)
	})

	t.Run("非法排序", func(t *testing.T) {
		_, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5, SortBy: "title"})
		assert.ErrorIs(t, err, catalog.ErrInvalidSort)
	})

	t.Run("非法每页数量", func(t *testing.T) {
		_, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 10})
		assert.ErrorIs(t, err, catalog.ErrInvalidPageSize)
	})
}

// TestListBooksUseCase_SnapshotPerRequest 响应生成后替换快照不影响已返回的结果
func TestListBooksUseCase_SnapshotPerRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	before, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5, Country: "jp"})
	require.NoError(t, err)

	defaults := currency.Defaults{Country: "us", Symbol: "$"}
	_, err = f.rates.Replace(currency.NewTable(map[string]currency.Rate{
		"jp": {Symbol: "¥", Rate: decimal.NewFromInt(150)},
	}, defaults))
	require.NoError(t, err)

	after, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5, Country: "jp"})
	require.NoError(t, err)

	assert.Equal(t, "6600.00", before.Items[0].ListPrice)
	assert.Equal(t, "9000.00", after.Items[0].ListPrice)
}

func TestFeaturedBooksUseCase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	views, err := f.featured.Featured(ctx, FeaturedRequest{TopK: 8})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 5, 1, 6, 7, 11, 2, 12}, viewIDs(views))

	views, err = f.featured.Featured(ctx, FeaturedRequest{SortBy: "popular", TopK: 8})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3, 7, 6, 5, 11, 12, 2}, viewIDs(views))

	_, err = f.featured.Featured(ctx, FeaturedRequest{SortBy: "newest", TopK: 8})
	assert.ErrorIs(t, err, catalog.ErrInvalidFeaturedSort)

	_, err = f.featured.Featured(ctx, FeaturedRequest{TopK: 0})
	assert.ErrorIs(t, err, catalog.ErrInvalidTopK)
}

func TestFeaturedBooksUseCase_TopDiscounted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	views, err := f.featured.TopDiscounted(ctx, FeaturedRequest{TopK: 3, Country: "gb"})
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 1, 7}, viewIDs(views))

	// 45.00 * 0.785 = 35.325 → 35.33
	assert.Equal(t, "35.33", views[2].ListPrice)
	assert.Equal(t, "£", views[2].CurrencySymbol)
}

func TestGetBookUseCase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("详情包含评论", func(t *testing.T) {
		detail, err := f.detail.Execute(ctx, 3, "us")
		require.NoError(t, err)
		assert.Equal(t, testutil.CategoryNonFiction, detail.CategoryName)
		assert.Equal(t, testutil.AuthorBob, detail.AuthorName)
		assert.Equal(t, "30.00", detail.ListPrice)
		assert.Equal(t, "25.00", detail.EffectivePrice)
		assert.Equal(t, "5.00", detail.DiscountAmount)
		require.Len(t, detail.Reviews, 2)
		assert.Equal(t, uint(5), detail.Reviews[0].ID)
	})

	t.Run("无评论的图书返回空数组", func(t *testing.T) {
		detail, err := f.detail.Execute(ctx, 4, "")
		require.NoError(t, err)
		assert.NotNil(t, detail.Reviews)
		assert.Empty(t, detail.Reviews)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := f.detail.Execute(ctx, 999, "")
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})
}

func TestFacetsUseCase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	categories, err := f.facets.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{testutil.CategoryFiction, testutil.CategoryNonFiction, testutil.CategorySciFi}, categories)

	authors, err := f.facets.Authors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{testutil.AuthorAlice, testutil.AuthorBob, testutil.AuthorCharlie}, authors)
}

func TestUseCases_DataAccessError(t *testing.T) {
	f := newFixture()
	f.repo.Err = apperrors.WrapCode(errors.New("i/o timeout"), apperrors.ErrCodeDataAccess, "查询图书失败")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := f.list.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 5})
	assert.True(t, apperrors.IsDataAccess(err))

	_, err = f.featured.TopDiscounted(ctx, FeaturedRequest{TopK: 5})
	assert.True(t, apperrors.IsDataAccess(err))

	_, err = f.facets.Authors(ctx)
	assert.True(t, apperrors.IsDataAccess(err))
}
