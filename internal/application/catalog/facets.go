package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// FacetsUseCase 列表筛选项(分类、作者)
type FacetsUseCase struct {
	catalogService catalog.Service
}

// NewFacetsUseCase 创建筛选项用例
func NewFacetsUseCase(catalogService catalog.Service) *FacetsUseCase {
	return &FacetsUseCase{catalogService: catalogService}
}

// Categories 分类名称(升序)
func (uc *FacetsUseCase) Categories(ctx context.Context) (names []string, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Categories")
	defer func() { tracing.End(span, err) }()

	names, err = uc.catalogService.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(names), nil
}

// Authors 作者名称(升序)
func (uc *FacetsUseCase) Authors(ctx context.Context) (names []string, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Authors")
	defer func() { tracing.End(span, err) }()

	names, err = uc.catalogService.Authors(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(names), nil
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
