package catalog

import "github.com/shopspring/decimal"

// PriceAnnotation 实时价格
type PriceAnnotation struct {
	EffectivePrice decimal.Decimal // 实际售价
	DiscountAmount decimal.Decimal // 优惠金额，不会为负
}

// EffectivePrice 根据生效折扣计算实际售价与优惠金额
func EffectivePrice(b Book, active map[uint]decimal.Decimal) PriceAnnotation {
	discount, ok := active[b.ID]
	return Annotate(b.Price, discount, ok)
}

// Annotate 实际售价 = 折扣价(若有)否则定价；优惠金额 = max(0, 定价 - 实际售价)
func Annotate(listPrice, discount decimal.Decimal, hasDiscount bool) PriceAnnotation {
	effective := listPrice
	if hasDiscount {
		effective = discount
	}

	amount := listPrice.Sub(effective)
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return PriceAnnotation{
		EffectivePrice: effective,
		DiscountAmount: amount,
	}
}
