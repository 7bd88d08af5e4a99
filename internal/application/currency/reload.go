// Package currency 汇率管理用例
package currency

import (
	"context"

	infracurrency "github.com/xiebiao/bookcatalog/internal/infrastructure/currency"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ReloadUseCase 管理端手动重载汇率文件
type ReloadUseCase struct {
	reloader *infracurrency.Reloader
}

// NewReloadUseCase 创建重载用例
func NewReloadUseCase(reloader *infracurrency.Reloader) *ReloadUseCase {
	return &ReloadUseCase{reloader: reloader}
}

// ReloadResult 重载结果
type ReloadResult struct {
	Rates          int    `json:"rates" example:"9"`
	DefaultCountry string `json:"default_country" example:"us"`
}

// Execute 重新读取CSV并替换快照
// 文件缺失或格式错误时旧快照保持不变，返回服务不可用错误
func (uc *ReloadUseCase) Execute(ctx context.Context) (result *ReloadResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "currency.Reload")
	defer func() { tracing.End(span, err) }()

	table, err := uc.reloader.ReloadFile(ctx, infracurrency.SourceAdmin)
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeServiceUnavailable, "汇率文件重载失败")
	}

	return &ReloadResult{
		Rates:          table.Len(),
		DefaultCountry: table.Defaults().Country,
	}, nil
}
