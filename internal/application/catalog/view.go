// Package catalog 目录查询用例：调用领域服务，并按请求国家换算价格
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
)

// BookView 图书响应DTO
// 价格为换算后的金额(两位小数字符串)，CurrencySymbol为对应币种符号
type BookView struct {
	ID             uint    `json:"id" example:"1"`
	Title          string  `json:"title" example:"Test Book 1"`
	Summary        string  `json:"summary"`
	CoverURL       string  `json:"cover_url"`
	CategoryID     uint    `json:"category_id" example:"1"`
	CategoryName   string  `json:"category_name" example:"Test Fiction"`
	AuthorID       uint    `json:"author_id" example:"1"`
	AuthorName     string  `json:"author_name" example:"Alice Test"`
	ListPrice      string  `json:"list_price" example:"20.00"`
	EffectivePrice string  `json:"effective_price" example:"10.00"`
	DiscountAmount string  `json:"discount_amount" example:"10.00"`
	CurrencySymbol string  `json:"currency_symbol" example:"$"`
	ReviewCount    int64   `json:"review_count" example:"2"`
	AvgRating      float64 `json:"avg_rating" example:"4.5"`
}

// presenter 使用一份汇率快照换算同一响应内的所有价格
type presenter struct {
	table   *currency.Table
	country string
}

func newPresenter(rates *currency.Store, country string) presenter {
	return presenter{table: rates.Current(), country: country}
}

func (p presenter) book(e *catalog.Entry) BookView {
	listPrice, symbol := p.table.Localize(e.Price, p.country)
	effective, _ := p.table.Localize(e.EffectivePrice, p.country)
	discount, _ := p.table.Localize(e.DiscountAmount, p.country)

	return BookView{
		ID:             e.ID,
		Title:          e.Title,
		Summary:        e.Summary,
		CoverURL:       e.CoverURL,
		CategoryID:     e.CategoryID,
		CategoryName:   e.CategoryName,
		AuthorID:       e.AuthorID,
		AuthorName:     e.AuthorName,
		ListPrice:      money(listPrice),
		EffectivePrice: money(effective),
		DiscountAmount: money(discount),
		CurrencySymbol: symbol,
		ReviewCount:    e.ReviewCount,
		AvgRating:      e.RoundedAverage(),
	}
}

func (p presenter) books(entries []catalog.Entry) []BookView {
	views := make([]BookView, len(entries))
	for i := range entries {
		views[i] = p.book(&entries[i])
	}
	return views
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
