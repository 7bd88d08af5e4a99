// Package clock 时间来源抽象，便于测试中固定"今天"
package clock

import "time"

// Clock 时间来源
type Clock interface {
	Now() time.Time
}

// RealClock 系统时间
type RealClock struct {
	loc *time.Location
}

// NewRealClock 创建系统时钟；loc为nil时使用本地时区
func NewRealClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now 返回当前时间
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock 固定时间（测试用）
type FixedClock struct {
	current time.Time
}

// NewFixedClock 创建固定时钟
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

// Now 返回固定时间
func (f *FixedClock) Now() time.Time {
	return f.current
}

// Set 修改当前时间
func (f *FixedClock) Set(t time.Time) {
	f.current = t
}

// Advance 时间前进d
func (f *FixedClock) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}

// DateOf 截断到日期（保留t所在时区的年月日，时分秒归零，统一为UTC表示）
// 折扣生效判断按"天"比较，不受时分秒影响
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today 返回时钟所在的日期
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}
