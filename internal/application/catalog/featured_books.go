package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// FeaturedBooksUseCase 精选图书与折扣榜
type FeaturedBooksUseCase struct {
	catalogService catalog.Service
	rates          *currency.Store
}

// NewFeaturedBooksUseCase 创建精选图书用例
func NewFeaturedBooksUseCase(catalogService catalog.Service, rates *currency.Store) *FeaturedBooksUseCase {
	return &FeaturedBooksUseCase{
		catalogService: catalogService,
		rates:          rates,
	}
}

// FeaturedRequest 精选/折扣榜请求
type FeaturedRequest struct {
	SortBy  string // recommended | popular，折扣榜忽略
	TopK    int
	Country string
}

// Featured 精选图书(recommended按平均分，popular按评论数)
func (uc *FeaturedBooksUseCase) Featured(ctx context.Context, req FeaturedRequest) (views []BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.FeaturedBooks")
	defer func() { tracing.End(span, err) }()
	span.SetAttributes(
		attribute.String("sort_by", req.SortBy),
		attribute.Int("top_k", req.TopK),
	)

	opt, err := catalog.ParseFeaturedOption(req.SortBy)
	if err != nil {
		return nil, err
	}

	entries, err := uc.catalogService.FeaturedBooks(ctx, opt, req.TopK)
	if err != nil {
		return nil, err
	}
	return newPresenter(uc.rates, req.Country).books(entries), nil
}

// TopDiscounted 优惠金额最大的前k本书
func (uc *FeaturedBooksUseCase) TopDiscounted(ctx context.Context, req FeaturedRequest) (views []BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.TopDiscounted")
	defer func() { tracing.End(span, err) }()
	span.SetAttributes(attribute.Int("top_k", req.TopK))

	entries, err := uc.catalogService.TopDiscounted(ctx, req.TopK)
	if err != nil {
		return nil, err
	}
	return newPresenter(uc.rates, req.Country).books(entries), nil
}
