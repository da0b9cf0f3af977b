package recurrence

import (
	"math/bits"
	"time"
)

// ExpandDates 枚举日期区间内所有命中重复规则的日期
//
// 按天逐日推进（AddDate 处理闰年与月末），结果升序。
// 空规则或倒置区间返回 nil。
func ExpandDates(pattern DayPattern, r DateRange) []time.Time {
	if pattern.IsEmpty() || r.Inverted() {
		return nil
	}
	dates := make([]time.Time, 0, (r.Days()/7+1)*bits.OnesCount8(uint8(pattern&0x7f)))
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if pattern.Has(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}

// CountSessions 等价于 len(ExpandDates(...))，不分配结果切片
func CountSessions(pattern DayPattern, r DateRange) int {
	if pattern.IsEmpty() || r.Inverted() {
		return 0
	}
	n := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if pattern.Has(d.Weekday()) {
			n++
		}
	}
	return n
}

// Occurs 判断某一天是否有课（日历日视图使用，无需展开整个区间）
func Occurs(pattern DayPattern, r DateRange, date time.Time) bool {
	d := CivilDate(date)
	return !r.Inverted() && r.Contains(d) && pattern.Has(d.Weekday())
}
