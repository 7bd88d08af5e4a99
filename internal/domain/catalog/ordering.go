package catalog

// 排序比较函数，与SQL的ORDER BY保持一致
// 所有排序最终按ID升序兜底，保证翻页结果稳定

// Less 按列表排序方式比较
func (s SortOption) Less(a, b *Entry) bool {
	switch s {
	case SortPopularity:
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		if c := a.EffectivePrice.Cmp(b.EffectivePrice); c != 0 {
			return c < 0
		}
	case SortPriceAsc:
		if c := a.EffectivePrice.Cmp(b.EffectivePrice); c != 0 {
			return c < 0
		}
	case SortPriceDesc:
		if c := a.EffectivePrice.Cmp(b.EffectivePrice); c != 0 {
			return c > 0
		}
	default:
		if c := a.DiscountAmount.Cmp(b.DiscountAmount); c != 0 {
			return c > 0
		}
		if c := a.EffectivePrice.Cmp(b.EffectivePrice); c != 0 {
			return c < 0
		}
	}
	return a.ID < b.ID
}

// Less 按精选排序方式比较
func (f FeaturedOption) Less(a, b *Entry) bool {
	switch f {
	case FeaturedPopular:
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
	default:
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
	}
	if c := a.EffectivePrice.Cmp(b.EffectivePrice); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// LessTopDiscounted 折扣榜：优惠金额降序，ID升序
func LessTopDiscounted(a, b *Entry) bool {
	if c := a.DiscountAmount.Cmp(b.DiscountAmount); c != 0 {
		return c > 0
	}
	return a.ID < b.ID
}
