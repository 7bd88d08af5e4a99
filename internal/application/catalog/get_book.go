package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// BookDetail 图书详情：图书 + 分类/作者 + 全部评论
type BookDetail struct {
	BookView
	Reviews []appreview.ReviewView `json:"reviews"`
}

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	catalogService catalog.Service
	reviewService  review.Service
	rates          *currency.Store
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(catalogService catalog.Service, reviewService review.Service, rates *currency.Store) *GetBookUseCase {
	return &GetBookUseCase{
		catalogService: catalogService,
		reviewService:  reviewService,
		rates:          rates,
	}
}

// Execute 查询图书详情，不存在时返回catalog.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint, country string) (detail *BookDetail, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.GetBook")
	defer func() { tracing.End(span, err) }()
	span.SetAttributes(attribute.Int64("book_id", int64(id)))

	entry, err := uc.catalogService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewService.BookReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		BookView: newPresenter(uc.rates, country).book(entry),
		Reviews:  appreview.ToViews(reviews),
	}, nil
}
