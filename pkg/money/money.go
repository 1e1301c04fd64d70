// Package money 金额处理，统一保留两位小数
package money

import (
	"github.com/shopspring/decimal"
)

// Places 金额小数位
const Places = 2

// Round 四舍五入到两位小数（half up）
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Equal 按两位小数比较
func Equal(a, b decimal.Decimal) bool {
	return Round(a).Equal(Round(b))
}

// HasAtMostPlaces 校验金额小数位不超过两位
func HasAtMostPlaces(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Places))
}

// String 固定两位小数输出，如 "9.90"
func String(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
