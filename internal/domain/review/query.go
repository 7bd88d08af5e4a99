package review

import (
	"strings"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// SortOption 评论排序
type SortOption int

const (
	// SortNewest 最新优先(默认)
	SortNewest SortOption = iota + 1
	// SortOldest 最早优先
	SortOldest
)

// ParseSortOption 解析评论排序参数
func ParseSortOption(s string) (SortOption, error) {
	switch strings.TrimSpace(s) {
	case "", "newest", "newest_to_oldest":
		return SortNewest, nil
	case "oldest", "oldest_to_newest":
		return SortOldest, nil
	default:
		return 0, ErrInvalidSort
	}
}

func (s SortOption) String() string {
	switch s {
	case SortNewest:
		return "newest"
	case SortOldest:
		return "oldest"
	default:
		return "unknown"
	}
}

// 评论领域错误
var (
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "book_id必须大于0")
	ErrInvalidPage   = apperrors.New(apperrors.ErrCodeInvalidPage, "页码必须大于等于1")
	ErrInvalidSize   = apperrors.New(apperrors.ErrCodeInvalidPageSize, "每页数量只能是5、15、20、25")
	ErrInvalidSort   = apperrors.New(apperrors.ErrCodeInvalidSort, "评论排序只能是newest或oldest")
	ErrInvalidStar   = apperrors.New(apperrors.ErrCodeInvalidRating, "评分筛选必须在1-5之间")
)

// Query 评论列表查询
// FilterRating为0表示不过滤，否则只返回该星级的评论
type Query struct {
	BookID       uint
	Page         int
	PageSize     int
	SortBy       SortOption
	FilterRating int
}

// Validate 校验参数
func (q Query) Validate() error {
	if q.BookID == 0 {
		return ErrInvalidBookID
	}
	if q.Page < 1 {
		return ErrInvalidPage
	}
	if !pagination.IsAllowedPageSize(q.PageSize) {
		return ErrInvalidSize
	}
	if q.SortBy != SortNewest && q.SortBy != SortOldest {
		return ErrInvalidSort
	}
	if q.FilterRating != 0 && (q.FilterRating < 1 || q.FilterRating > 5) {
		return ErrInvalidStar
	}
	return nil
}

// Offset 分页偏移量
func (q Query) Offset() int {
	return pagination.Offset(q.Page, q.PageSize)
}
