package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/pkg/clock"
)

// Discount 图书折扣
// 有效期按日期比较: StartDate <= D 且 (EndDate为空 或 EndDate > D)
// EndDate为空表示长期有效
type Discount struct {
	ID        uint
	BookID    uint
	StartDate time.Time
	EndDate   *time.Time
	Price     decimal.Decimal // 折后价
}

// NewDiscount 创建折扣，日期统一截断到UTC零点
func NewDiscount(bookID uint, start time.Time, end *time.Time, price decimal.Decimal) *Discount {
	d := &Discount{
		BookID:    bookID,
		StartDate: clock.Date(start),
		Price:     price,
	}
	if end != nil {
		e := clock.Date(*end)
		d.EndDate = &e
	}
	return d
}

// IsActive 判断折扣在asOf当天是否生效
// 结束日当天不生效（严格大于）
func (d *Discount) IsActive(asOf time.Time) bool {
	day := clock.Date(asOf)
	if d.StartDate.After(day) {
		return false
	}
	return d.EndDate == nil || d.EndDate.After(day)
}

// Overlaps 判断两个折扣的闭区间 [start, end] 是否相交，end为空视为正无穷
func (d *Discount) Overlaps(other *Discount) bool {
	// a.start <= b.end && b.start <= a.end
	return endsOnOrAfter(other.EndDate, d.StartDate) && endsOnOrAfter(d.EndDate, other.StartDate)
}

func endsOnOrAfter(end *time.Time, t time.Time) bool {
	return end == nil || !end.Before(t)
}

// Validate 校验折扣自身的合法性（不含重叠检查）
func (d *Discount) Validate(listPrice decimal.Decimal) error {
	if d.StartDate.IsZero() {
		return ErrInvalidPeriod
	}
	if d.EndDate != nil && !d.EndDate.After(d.StartDate) {
		return ErrInvalidPeriod
	}
	if !d.Price.IsPositive() || !d.Price.LessThan(listPrice) {
		return ErrInvalidPrice
	}
	return nil
}

// Resolve 从一本书的折扣中选出asOf当天生效的那一个
//
// 写入时保证同一本书的折扣区间不重叠，正常情况下最多只有一个生效。
// 数据已被破坏出现多个生效折扣时，取折后价最低的（优惠最大），
// 价格相同再取ID最小的，保证结果确定。
func Resolve(discounts []*Discount, asOf time.Time) *Discount {
	var best *Discount
	for _, d := range discounts {
		if d == nil || !d.IsActive(asOf) {
			continue
		}
		if best == nil ||
			d.Price.LessThan(best.Price) ||
			(d.Price.Equal(best.Price) && d.ID < best.ID) {
			best = d
		}
	}
	return best
}
