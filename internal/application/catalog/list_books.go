package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 排序参数在此解析为封闭枚举，非法值直接返回参数错误
// 2. 分页、过滤、排序由领域服务完成
// 3. 价格按请求国家换算，同一响应只读取一次汇率快照
type ListBooksUseCase struct {
	catalogService catalog.Service
	rates          *currency.Store
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(catalogService catalog.Service, rates *currency.Store) *ListBooksUseCase {
	return &ListBooksUseCase{
		catalogService: catalogService,
		rates:          rates,
	}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Page      int
	PageSize  int
	SortBy    string // default | popularity | price_asc | price_desc
	Category  string // 分类名称，空表示不过滤
	Author    string // 作者名称，空表示不过滤
	MinRating int    // 最低平均分，0表示不过滤
	Country   string // 价格换算的国家代码
}

// ListBooksResponse 列表查询响应
type ListBooksResponse struct {
	Items  []BookView
	Paging pagination.Paging
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.ListBooks")
	defer func() { tracing.End(span, err) }()
	span.SetAttributes(
		attribute.Int("page", req.Page),
		attribute.Int("page_size", req.PageSize),
		attribute.String("sort_by", req.SortBy),
		attribute.String("country", req.Country),
	)

	sortBy, err := catalog.ParseSortOption(req.SortBy)
	if err != nil {
		return nil, err
	}

	result, err := uc.catalogService.ListBooks(ctx, catalog.ListQuery{
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    sortBy,
		Category:  req.Category,
		Author:    req.Author,
		MinRating: req.MinRating,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("total_items", result.Paging.TotalItems))

	return &ListBooksResponse{
		Items:  newPresenter(uc.rates, req.Country).books(result.Items),
		Paging: result.Paging,
	}, nil
}
