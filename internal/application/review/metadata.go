package review

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// MetadataUseCase 评分汇总与星级范围
type MetadataUseCase struct {
	reviewService review.Service
}

// NewMetadataUseCase 创建评分汇总用例
func NewMetadataUseCase(reviewService review.Service) *MetadataUseCase {
	return &MetadataUseCase{reviewService: reviewService}
}

// Summary 单本图书的评分汇总(star_N_count/total_reviews/average_rating)
func (uc *MetadataUseCase) Summary(ctx context.Context, bookID uint) (detail map[string]int, err error) {
	ctx, span := tracing.StartSpan(ctx, "review.Summary")
	defer func() { tracing.End(span, err) }()
	span.SetAttributes(attribute.Int64("book_id", int64(bookID)))

	summary, err := uc.reviewService.Summary(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return summary.Detail(), nil
}

// Stars 评论中出现过的星级(升序)
func (uc *MetadataUseCase) Stars(ctx context.Context) (stars []int, err error) {
	ctx, span := tracing.StartSpan(ctx, "review.Stars")
	defer func() { tracing.End(span, err) }()

	stars, err = uc.reviewService.Stars(ctx)
	if err != nil {
		return nil, err
	}
	if stars == nil {
		stars = []int{}
	}
	return stars, nil
}
