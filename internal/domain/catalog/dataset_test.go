package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/testutil"
)

// 种子数据下各类查询的期望顺序
func TestDataset_ListOrdering(t *testing.T) {
	data := testutil.Dataset()

	tests := []struct {
		name  string
		query catalog.ListQuery
		want  []uint
	}{
		{"默认排序", catalog.ListQuery{SortBy: catalog.SortOnSale}, []uint{5, 1, 7, 3, 10, 9, 6, 11, 12, 4, 2, 8}},
		{"按热度", catalog.ListQuery{SortBy: catalog.SortPopularity}, []uint{1, 3, 7, 6, 5, 11, 12, 2, 9, 4, 8, 10}},
		{"价格升序", catalog.ListQuery{SortBy: catalog.SortPriceAsc}, []uint{1, 9, 3, 6, 5, 7, 11, 12, 4, 2, 8, 10}},
		{"价格降序", catalog.ListQuery{SortBy: catalog.SortPriceDesc}, []uint{10, 2, 8, 4, 7, 11, 12, 5, 3, 6, 9, 1}},
		{"按分类", catalog.ListQuery{SortBy: catalog.SortOnSale, Category: testutil.CategoryFiction}, []uint{5, 1, 7, 9, 11, 2}},
		{"按作者", catalog.ListQuery{SortBy: catalog.SortOnSale, Author: testutil.AuthorAlice}, []uint{5, 1, 9, 11, 2}},
		{"最低评分4", catalog.ListQuery{SortBy: catalog.SortOnSale, MinRating: 4}, []uint{5, 1, 7, 3, 6}},
		{"分类+价格升序", catalog.ListQuery{SortBy: catalog.SortPriceAsc, Category: testutil.CategoryFiction}, []uint{1, 9, 5, 7, 11, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.query
			q.Page, q.PageSize = 1, 25
			require.NoError(t, q.Validate())

			items, total := data.List(q, testutil.Today)
			assert.Equal(t, tt.want, testutil.IDs(items))
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestDataset_ListPaging(t *testing.T) {
	data := testutil.Dataset()
	q := catalog.ListQuery{Page: 2, PageSize: 5, SortBy: catalog.SortOnSale}

	items, total := data.List(q, testutil.Today)
	assert.Equal(t, int64(12), total)
	assert.Equal(t, []uint{9, 6, 11, 12, 4}, testutil.IDs(items))

	q.Page = 4
	items, total = data.List(q, testutil.Today)
	assert.Equal(t, int64(12), total, "超出范围的页仍返回总数")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// TestDataset_ListHugePage 页码过大时返回空页，不因偏移量溢出出错
func TestDataset_ListHugePage(t *testing.T) {
	data := testutil.Dataset()
	q := catalog.ListQuery{Page: 368934881474191034, PageSize: 25, SortBy: catalog.SortOnSale}
	require.NoError(t, q.Validate())

	items, total := data.List(q, testutil.Today)
	assert.Equal(t, int64(12), total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// TestDataset_ListAllPages 逐页拼接得到完整且有序的结果，没有重复或遗漏
func TestDataset_ListAllPages(t *testing.T) {
	data := testutil.Dataset()

	for _, sortBy := range []catalog.SortOption{catalog.SortOnSale, catalog.SortPopularity, catalog.SortPriceAsc, catalog.SortPriceDesc} {
		t.Run(sortBy.String(), func(t *testing.T) {
			full, total := data.List(catalog.ListQuery{Page: 1, PageSize: 25, SortBy: sortBy}, testutil.Today)
			require.Equal(t, int64(12), total)

			var concat []uint
			seen := map[uint]bool{}
			q := catalog.ListQuery{Page: 1, PageSize: 5, SortBy: sortBy}
			totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
			for page := 1; page <= totalPages; page++ {
				q.Page = page
				items, pageTotal := data.List(q, testutil.Today)
				assert.Equal(t, total, pageTotal)
				for _, id := range testutil.IDs(items) {
					assert.False(t, seen[id], "重复的图书 %d", id)
					seen[id] = true
					concat = append(concat, id)
				}
			}

			assert.Len(t, concat, int(total))
			assert.Equal(t, testutil.IDs(full), concat, "分页拼接后应与整体排序一致")
		})
	}
}

func TestDataset_NoMatch(t *testing.T) {
	data := testutil.Dataset()
	q := catalog.ListQuery{Page: 1, PageSize: 15, SortBy: catalog.SortOnSale, Category: "Poetry"}

	items, total := data.List(q, testutil.Today)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestDataset_TopDiscounted(t *testing.T) {
	data := testutil.Dataset()

	assert.Equal(t, []uint{5, 1, 7, 3, 10}, testutil.IDs(data.TopDiscounted(catalog.DefaultTopDiscountedK, testutil.Today)))
	assert.Equal(t, []uint{5, 1, 7}, testutil.IDs(data.TopDiscounted(3, testutil.Today)))

	// 只有5本书有生效折扣
	assert.Len(t, data.TopDiscounted(catalog.MaxTopK, testutil.Today), 5)
}

func TestDataset_Featured(t *testing.T) {
	data := testutil.Dataset()

	recommended := data.Featured(catalog.FeaturedRecommended, catalog.DefaultFeaturedK, testutil.Today)
	assert.Equal(t, []uint{3, 5, 1, 6, 7, 11, 2, 12}, testutil.IDs(recommended))

	popular := data.Featured(catalog.FeaturedPopular, catalog.DefaultFeaturedK, testutil.Today)
	assert.Equal(t, []uint{1, 3, 7, 6, 5, 11, 12, 2}, testutil.IDs(popular))
}

func TestDataset_Find(t *testing.T) {
	data := testutil.Dataset()

	entry, ok := data.Find(7, testutil.Today)
	require.True(t, ok)
	assert.Equal(t, testutil.CategoryFiction, entry.CategoryName)
	assert.Equal(t, testutil.AuthorCharlie, entry.AuthorName)
	assert.True(t, entry.EffectivePrice.Equal(testutil.Price("35.00")))
	assert.True(t, entry.DiscountAmount.Equal(testutil.Price("10.00")))
	assert.Equal(t, int64(2), entry.ReviewCount)
	assert.Equal(t, 4.0, entry.AverageRating)

	_, ok = data.Find(999, testutil.Today)
	assert.False(t, ok)
}

// TestDataset_DateBoundaries 折扣随日期变化：第二天1、5号书折扣结束，2号书折扣开始
func TestDataset_DateBoundaries(t *testing.T) {
	data := testutil.Dataset()
	tomorrow := testutil.Today.AddDate(0, 0, 1)
	dayAfter := testutil.Today.AddDate(0, 0, 2)

	assert.Equal(t, []uint{5, 1, 2, 7, 3, 10}, testutil.IDs(data.TopDiscounted(catalog.MaxTopK, tomorrow)))
	assert.Equal(t, []uint{2, 7, 3}, testutil.IDs(data.TopDiscounted(catalog.MaxTopK, dayAfter)))
}
