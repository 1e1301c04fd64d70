package book

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/pkg/money"
)

// Summary 图书的完整展示信息（列表、详情、订单价格核对共用）
type Summary struct {
	Book     *Book
	Author   *Author
	Category *Category
	Discount *discount.Discount // 当前生效的折扣，可能为nil
	Rating   review.Rating

	FinalPrice     decimal.Decimal // 有折扣时为折后价，否则为原价
	DiscountAmount decimal.Decimal // 原价-折后价，无折扣为0
}

// Price 计算最终价格和优惠金额（两位小数）
func Price(list decimal.Decimal, d *discount.Discount) (final, amount decimal.Decimal) {
	if d == nil {
		return money.Round(list), decimal.Zero
	}
	final = money.Round(d.Price)
	return final, money.Round(list.Sub(final))
}

// NewSummary 组装Summary并计算价格
func NewSummary(b *Book, d *discount.Discount, rating review.Rating) *Summary {
	final, amount := Price(b.Price, d)
	return &Summary{
		Book:           b,
		Discount:       d,
		Rating:         rating,
		FinalPrice:     final,
		DiscountAmount: amount,
	}
}
