package review

import (
	"context"

	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// PageResult 评论分页结果
type PageResult struct {
	Items  []Review
	Paging pagination.Paging
}

// Service 评论查询服务
type Service interface {
	// ListReviews 分页查询评论；有评论时Paging.AdditionalDetail携带评分汇总
	ListReviews(ctx context.Context, q Query) (*PageResult, error)

	// Summary 评分汇总
	Summary(ctx context.Context, bookID uint) (*Summary, error)

	// BookReviews 图书详情页使用的全部评论
	BookReviews(ctx context.Context, bookID uint) ([]Review, error)

	// Stars 出现过的星级
	Stars(ctx context.Context) ([]int, error)
}

type service struct {
	repo Repository
}

// NewService 创建评论服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListReviews(ctx context.Context, q Query) (*PageResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	paging := pagination.New(q.Page, q.PageSize, page.Total)
	if page.Total > 0 {
		paging.AdditionalDetail = Summarize(q.BookID, page.StarCounts).Detail()
	}

	return &PageResult{Items: page.Items, Paging: paging}, nil
}

func (s *service) Summary(ctx context.Context, bookID uint) (*Summary, error) {
	if bookID == 0 {
		return nil, ErrInvalidBookID
	}

	counts, err := s.repo.StarCounts(ctx, bookID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(bookID, counts)
	return &summary, nil
}

func (s *service) BookReviews(ctx context.Context, bookID uint) ([]Review, error) {
	if bookID == 0 {
		return nil, ErrInvalidBookID
	}
	return s.repo.ListByBook(ctx, bookID)
}

func (s *service) Stars(ctx context.Context) ([]int, error) {
	return s.repo.DistinctStars(ctx)
}
