package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── 时间窗口 / 日期区间 ──

// Clock 一天中的分钟数（0 ~ 1439）
type Clock int

// ParseClock 解析 "HH:MM"，兼容 PostgreSQL time 列扫描出的 "HH:MM:SS"（秒被舍弃）
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	return Clock(h*60 + m), nil
}

// String 输出 "HH:MM"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TimeWindow 每日上课时间段 [Start, End)
type TimeWindow struct {
	Start Clock
	End   Clock
}

// ParseTimeWindow 解析起止时间；不校验先后顺序，由 Valid 判断
func ParseTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: s, End: e}, nil
}

// Minutes 窗口长度（分钟），起止倒置时为负
func (w TimeWindow) Minutes() int {
	return int(w.End - w.Start)
}

// Valid start < end
func (w TimeWindow) Valid() bool {
	return w.Start < w.End
}

// Overlaps 半开区间重叠：首尾相接不算冲突
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

// String 输出 "HH:MM-HH:MM"
func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// ── DateRange ──

const dateLayout = "2006-01-02"

// DateRange 闭区间 [Start, End]，均为 UTC 零点的日历日期
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate 解析 "2006-01-02" 或 RFC3339 字符串，统一归一为 UTC 零点日期
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return CivilDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// CivilDate 取 t 在其自身时区下的年月日，构造 UTC 零点日期
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange 构造日期区间（不校验先后，倒置区间在计算时得到空结果）
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: CivilDate(start), End: CivilDate(end)}
}

// ParseDateRange 解析起止日期字符串
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

// Inverted 开始日期晚于结束日期
func (r DateRange) Inverted() bool {
	return r.Start.After(r.End)
}

// Contains 日期是否落在区间内（含两端）
func (r DateRange) Contains(date time.Time) bool {
	d := CivilDate(date)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days 区间包含的天数；倒置区间为 0
func (r DateRange) Days() int {
	if r.Inverted() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}
