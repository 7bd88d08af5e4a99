// Package currency 价格本地化：汇率表、CSV解析、快照存储
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rate 单个国家的货币符号与汇率(相对基准货币)
// Rate为零值视为缺失，按1处理；Symbol为空时使用默认符号
type Rate struct {
	Symbol string
	Rate   decimal.Decimal
}

// Defaults 回退设置
type Defaults struct {
	Country string // 默认国家代码，如"us"
	Symbol  string // 默认货币符号，如"$"
}

// Table 不可变汇率表
// 构造后不再修改，多个请求可并发读取
type Table struct {
	rates    map[string]Rate
	defaults Defaults
}

// NewTable 创建汇率表，国家代码统一转为小写
func NewTable(rates map[string]Rate, defaults Defaults) *Table {
	copied := make(map[string]Rate, len(rates))
	for code, r := range rates {
		copied[normalizeCode(code)] = r
	}
	defaults.Country = normalizeCode(defaults.Country)
	return &Table{rates: copied, defaults: defaults}
}

// Len 汇率条目数
func (t *Table) Len() int {
	return len(t.rates)
}

// Defaults 回退设置
func (t *Table) Defaults() Defaults {
	return t.defaults
}

// Lookup 按国家代码查找汇率(不回退)
func (t *Table) Lookup(code string) (Rate, bool) {
	r, ok := t.rates[normalizeCode(code)]
	return r, ok
}

// Resolve 解析国家代码对应的汇率与符号
// 代码不是2个字母或不在表中时使用默认国家；默认国家也缺失时汇率为1
func (t *Table) Resolve(code string) (decimal.Decimal, string) {
	code = normalizeCode(code)
	r, ok := t.rates[code]
	if !isCountryCode(code) || !ok {
		r, ok = t.rates[t.defaults.Country]
	}
	if !ok {
		return decimal.NewFromInt(1), t.defaults.Symbol
	}

	rate := r.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	symbol := r.Symbol
	if symbol == "" {
		symbol = t.defaults.Symbol
	}
	return rate, symbol
}

// Localize 换算金额并返回货币符号，结果保留两位小数(四舍五入)
func (t *Table) Localize(amount decimal.Decimal, code string) (decimal.Decimal, string) {
	rate, symbol := t.Resolve(code)
	return amount.Mul(rate).Round(2), symbol
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// isCountryCode 是否为两位小写字母
func isCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}

// IsCountryCode 校验外部传入的国家代码(忽略大小写与首尾空白)
func IsCountryCode(code string) bool {
	return isCountryCode(normalizeCode(code))
}

// NormalizeCode 国家代码规范化(去空白、转小写)
func NormalizeCode(code string) string {
	return normalizeCode(code)
}
