package handler

import (
	"github.com/gin-gonic/gin"

	appcurrency "github.com/xiebiao/bookcatalog/internal/application/currency"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// CurrencyHandler 汇率管理处理器
type CurrencyHandler struct {
	reload *appcurrency.ReloadUseCase
}

// NewCurrencyHandler 创建汇率管理处理器
func NewCurrencyHandler(reload *appcurrency.ReloadUseCase) *CurrencyHandler {
	return &CurrencyHandler{reload: reload}
}

// Reload 重新加载汇率文件
// @Summary      重载汇率
// @Description  重新读取汇率CSV并替换快照，失败时保留旧快照
// @Tags         管理
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcurrency.ReloadResult}
// @Failure      401 {object} response.Response "未登录"
// @Failure      503 {object} response.Response "重载失败"
// @Router       /api/v1/admin/currencies/reload [post]
func (h *CurrencyHandler) Reload(c *gin.Context) {
	result, err := h.reload.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	logger.FromContext(c.Request.Context()).Info("管理端重载汇率",
		"subject", middleware.GetSubject(c),
		"rates", result.Rates,
	)
	response.Success(c, result)
}
