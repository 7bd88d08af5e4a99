package catalog

import (
	"strings"

	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// SortOption 列表排序方式(封闭枚举)
type SortOption int

const (
	// SortOnSale 默认排序：优惠金额降序，实际售价升序
	SortOnSale SortOption = iota + 1
	// SortPopularity 评论数降序，实际售价升序
	SortPopularity
	// SortPriceAsc 实际售价升序
	SortPriceAsc
	// SortPriceDesc 实际售价降序
	SortPriceDesc
)

var sortOptionNames = map[SortOption]string{
	SortOnSale:     "default",
	SortPopularity: "popularity",
	SortPriceAsc:   "price_asc",
	SortPriceDesc:  "price_desc",
}

// ParseSortOption 解析排序参数，空字符串为默认排序
func ParseSortOption(s string) (SortOption, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "on_sale" {
		return SortOnSale, nil
	}
	for opt, name := range sortOptionNames {
		if name == s {
			return opt, nil
		}
	}
	return 0, ErrInvalidSort
}

func (s SortOption) String() string {
	if name, ok := sortOptionNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid 是否为已定义的排序方式
func (s SortOption) Valid() bool {
	_, ok := sortOptionNames[s]
	return ok
}

// FeaturedOption 精选列表排序方式
type FeaturedOption int

const (
	// FeaturedRecommended 平均分降序，实际售价升序
	FeaturedRecommended FeaturedOption = iota + 1
	// FeaturedPopular 评论数降序，实际售价升序
	FeaturedPopular
)

// ParseFeaturedOption 解析精选排序参数，空字符串视为recommended
func ParseFeaturedOption(s string) (FeaturedOption, error) {
	switch strings.TrimSpace(s) {
	case "", "recommended":
		return FeaturedRecommended, nil
	case "popular":
		return FeaturedPopular, nil
	default:
		return 0, ErrInvalidFeaturedSort
	}
}

func (f FeaturedOption) String() string {
	switch f {
	case FeaturedRecommended:
		return "recommended"
	case FeaturedPopular:
		return "popular"
	default:
		return "unknown"
	}
}

// Valid 是否为已定义的精选排序
func (f FeaturedOption) Valid() bool {
	return f == FeaturedRecommended || f == FeaturedPopular
}

const (
	// DefaultFeaturedK 精选列表默认数量
	DefaultFeaturedK = 8
	// DefaultTopDiscountedK 折扣榜默认数量
	DefaultTopDiscountedK = 5
	// MaxTopK top_k上限
	MaxTopK = 50

	MinRating = 1
	MaxRating = 5
)

// ListQuery 列表查询条件
// Category/Author为空表示不过滤，MinRating为0表示不过滤
type ListQuery struct {
	Page      int
	PageSize  int
	SortBy    SortOption
	Category  string
	Author    string
	MinRating int
}

// Validate 校验查询参数
func (q ListQuery) Validate() error {
	if q.Page < 1 {
		return ErrInvalidPage
	}
	if !pagination.IsAllowedPageSize(q.PageSize) {
		return ErrInvalidPageSize
	}
	if !q.SortBy.Valid() {
		return ErrInvalidSort
	}
	if q.MinRating != 0 && (q.MinRating < MinRating || q.MinRating > MaxRating) {
		return ErrInvalidRating
	}
	return nil
}

// Offset 分页偏移量
func (q ListQuery) Offset() int {
	return pagination.Offset(q.Page, q.PageSize)
}

// ValidateTopK 校验top_k范围
func ValidateTopK(k int) error {
	if k < 1 || k > MaxTopK {
		return ErrInvalidTopK
	}
	return nil
}
