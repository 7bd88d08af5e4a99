package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// SnapshotMessage 汇率服务推送的完整汇率表
//
//	{"rates":[{"country_code":"jp","currency_symbol":"¥","rate":"149.5"}]}
type SnapshotMessage struct {
	Rates []SnapshotRate `json:"rates"`
}

// SnapshotRate 单条汇率
type SnapshotRate struct {
	CountryCode    string          `json:"country_code"`
	CurrencySymbol string          `json:"currency_symbol"`
	Rate           decimal.Decimal `json:"rate"`
}

// ErrEmptySnapshot 快照不含任何有效汇率
var ErrEmptySnapshot = errors.New("currency snapshot: no valid rates")

// Table 转换为汇率表，国家代码非法或汇率非正的条目忽略
func (m SnapshotMessage) Table(defaults domain.Defaults) (*domain.Table, error) {
	rates := make(map[string]domain.Rate, len(m.Rates))
	for _, r := range m.Rates {
		if !domain.IsCountryCode(r.CountryCode) || !r.Rate.IsPositive() {
			continue
		}
		rates[domain.NormalizeCode(r.CountryCode)] = domain.Rate{Symbol: r.CurrencySymbol, Rate: r.Rate}
	}
	if len(rates) == 0 {
		return nil, ErrEmptySnapshot
	}
	return domain.NewTable(rates, defaults), nil
}

// SnapshotHandler 处理汇率快照消息
// 消息格式错误或内容为空时丢弃(不重新入队)，快照不变
func SnapshotHandler(reloader *Reloader) mq.Handler {
	return func(ctx context.Context, body []byte) error {
		var msg SnapshotMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return mq.Permanent(fmt.Errorf("解析汇率快照失败: %w", err))
		}

		table, err := msg.Table(reloader.Defaults())
		if err != nil {
			return mq.Permanent(err)
		}
		return reloader.Apply(ctx, SourceMQ, table)
	}
}
