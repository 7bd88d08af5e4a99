package review

import "context"

// Repository 评论只读仓储
type Repository interface {
	// List 按条件分页查询评论
	// 有命中时同一快照内附带该书各星级评论数
	List(ctx context.Context, q Query) (*Page, error)

	// ListByBook 某本书的全部评论(最新优先)
	ListByBook(ctx context.Context, bookID uint) ([]Review, error)

	// StarCounts 某本书各星级的评论数
	StarCounts(ctx context.Context, bookID uint) (map[int]int64, error)

	// DistinctStars 所有评论中出现过的星级(升序)
	DistinctStars(ctx context.Context) ([]int, error)
}

// Page 评论列表查询结果，各字段来自同一快照
type Page struct {
	Items      []Review
	Total      int64
	StarCounts map[int]int64
}
