package review

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ListReviewsUseCase 评论列表用例
type ListReviewsUseCase struct {
	reviewService review.Service
}

// NewListReviewsUseCase 创建评论列表用例
func NewListReviewsUseCase(reviewService review.Service) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewService: reviewService}
}

// ListReviewsRequest 评论列表请求
type ListReviewsRequest struct {
	BookID       uint
	Page         int
	PageSize     int
	SortBy       string // newest | oldest
	FilterRating int    // 0表示不过滤
}

// ListReviewsResponse 评论列表响应
type ListReviewsResponse struct {
	Items  []ReviewView
	Paging pagination.Paging
}

// Execute 执行评论查询
func (uc *ListReviewsUseCase) Execute(ctx context.Context, req ListReviewsRequest) (resp *ListReviewsResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "review.ListReviews")
	defer func() { tracing.End(span, err) }()
	span.SetAttributes(
		attribute.Int64("book_id", int64(req.BookID)),
		attribute.Int("page", req.Page),
	)

	sortBy, err := review.ParseSortOption(req.SortBy)
	if err != nil {
		return nil, err
	}

	result, err := uc.reviewService.ListReviews(ctx, review.Query{
		BookID:       req.BookID,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       sortBy,
		FilterRating: req.FilterRating,
	})
	if err != nil {
		return nil, err
	}

	return &ListReviewsResponse{
		Items:  ToViews(result.Items),
		Paging: result.Paging,
	}, nil
}
