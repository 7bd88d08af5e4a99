package catalog

import (
	"sort"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// Dataset 内存中的目录数据
// 与SQL查询使用同一套规则(折扣解析、价格计算、热度统计、排序)
type Dataset struct {
	Books      []Book
	Categories []Category
	Authors    []Author
	Discounts  []Discount
	Ratings    []Rating
}

// Entries 计算today时所有图书的目录条目(按ID升序)
func (d *Dataset) Entries(today time.Time) []Entry {
	categories := make(map[uint]string, len(d.Categories))
	for _, c := range d.Categories {
		categories[c.ID] = c.Name
	}
	authors := make(map[uint]string, len(d.Authors))
	for _, a := range d.Authors {
		authors[a.ID] = a.Name
	}

	active := ResolveActiveDiscounts(d.Discounts, today)
	popularity := AggregatePopularity(d.Ratings)

	entries := make([]Entry, 0, len(d.Books))
	for _, b := range d.Books {
		entries = append(entries, Entry{
			Book:            b,
			CategoryName:    categories[b.CategoryID],
			AuthorName:      authors[b.AuthorID],
			PriceAnnotation: EffectivePrice(b, active),
			Popularity:      popularity[b.ID],
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Matches 条目是否满足过滤条件(分类、作者、最低评分同时生效)
func (q ListQuery) Matches(e *Entry) bool {
	if q.Category != "" && e.CategoryName != q.Category {
		return false
	}
	if q.Author != "" && e.AuthorName != q.Author {
		return false
	}
	if q.MinRating > 0 && e.AverageRating < float64(q.MinRating) {
		return false
	}
	return true
}

// List 过滤、排序、分页，返回当前页与过滤后的总数
func (d *Dataset) List(q ListQuery, today time.Time) ([]Entry, int64) {
	var filtered []Entry
	for _, e := range d.Entries(today) {
		if q.Matches(&e) {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return q.SortBy.Less(&filtered[i], &filtered[j]) })

	total := int64(len(filtered))
	return window(filtered, q.Offset(), q.PageSize), total
}

// Featured 精选前k本
func (d *Dataset) Featured(opt FeaturedOption, k int, today time.Time) []Entry {
	entries := d.Entries(today)
	sort.SliceStable(entries, func(i, j int) bool { return opt.Less(&entries[i], &entries[j]) })
	return window(entries, 0, k)
}

// TopDiscounted 优惠金额最高的前k本(只包含有优惠的图书)
func (d *Dataset) TopDiscounted(k int, today time.Time) []Entry {
	var discounted []Entry
	for _, e := range d.Entries(today) {
		if e.DiscountAmount.IsPositive() {
			discounted = append(discounted, e)
		}
	}
	sort.SliceStable(discounted, func(i, j int) bool { return LessTopDiscounted(&discounted[i], &discounted[j]) })
	return window(discounted, 0, k)
}

// Find 按ID查找条目
func (d *Dataset) Find(id uint, today time.Time) (*Entry, bool) {
	for _, e := range d.Entries(today) {
		if e.ID == id {
			return &e, true
		}
	}
	return nil, false
}

func window(entries []Entry, offset, limit int) []Entry {
	if pagination.BeyondEnd(offset, int64(len(entries))) {
		return []Entry{}
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}
