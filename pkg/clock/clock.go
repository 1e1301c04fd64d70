// Package clock 可注入的时间源
package clock

import "time"

// Clock 返回当前时间
type Clock interface {
	Now() time.Time
}

// Func 适配普通函数
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System 系统时钟
var System Clock = Func(time.Now)

// Fixed 固定时间（测试用）
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// Date 截断到UTC零点，折扣有效期只按日期比较
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today 当前日期（UTC零点）
func Today(c Clock) time.Time {
	return Date(c.Now())
}
