package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookcatalog/pkg/clock"
)

// IsActive 折扣在today是否生效
// 规则：start_date <= today 且 (end_date为空 或 end_date >= today)，按天比较
func (d Discount) IsActive(today time.Time) bool {
	day := clock.DateOf(today)
	if clock.DateOf(d.StartDate).After(day) {
		return false
	}
	return d.EndDate == nil || !clock.DateOf(*d.EndDate).Before(day)
}

// ResolveActiveDiscounts 计算每本书在today生效的最低折扣价
// 没有生效折扣的图书不出现在结果中，调用方回退到定价
func ResolveActiveDiscounts(discounts []Discount, today time.Time) map[uint]decimal.Decimal {
	active := make(map[uint]decimal.Decimal)
	for _, d := range discounts {
		if !d.IsActive(today) {
			continue
		}
		if cur, ok := active[d.BookID]; !ok || d.Price.LessThan(cur) {
			active[d.BookID] = d.Price
		}
	}
	return active
}
