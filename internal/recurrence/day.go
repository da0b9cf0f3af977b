package recurrence

import (
	"fmt"
	"strings"
	"time"
)

// ── 星期代码 ──────────────────────────────────────────────
//
// 后端以逗号分隔的星期代码存储重复规则，例如 "M,W,F"。
// 代码与 time.Weekday 一一对应（0=周日 … 6=周六）。
// "T" 与 "TH" 同为 T 开头，必须整词匹配，不能按前缀识别。
// ─────────────────────────────────────────────────────────────

// DayCode 星期代码
type DayCode string

const (
	Sunday    DayCode = "SU"
	Monday    DayCode = "M"
	Tuesday   DayCode = "T"
	Wednesday DayCode = "W"
	Thursday  DayCode = "TH"
	Friday    DayCode = "F"
	Saturday  DayCode = "S"
)

// dayOrder 规范输出顺序，下标即 time.Weekday
var dayOrder = [7]DayCode{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var codeToWeekday = map[DayCode]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// ParseDayCode 解析单个星期代码（大小写不敏感）
func ParseDayCode(s string) (DayCode, error) {
	code := DayCode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := codeToWeekday[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayCode, s)
	}
	return code, nil
}

// Weekday 返回对应的 time.Weekday
func (d DayCode) Weekday() time.Weekday {
	return codeToWeekday[d]
}

// DayCodeOf 由 time.Weekday 反查星期代码
func DayCodeOf(wd time.Weekday) DayCode {
	return dayOrder[wd]
}

// ── DayPattern ──

// DayPattern 一组星期（位集合，第 i 位对应 time.Weekday(i)），与顺序无关
type DayPattern uint8

// ParseDayPattern 解析 "M,W,F" 形式的重复规则
//
// 空串与空片段（"M,,W"、末尾逗号）被忽略；出现未知代码则整体报错。
func ParseDayPattern(s string) (DayPattern, error) {
	var p DayPattern
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		code, err := ParseDayCode(part)
		if err != nil {
			return 0, err
		}
		p |= 1 << uint(code.Weekday())
	}
	return p, nil
}

// PatternOf 由若干星期代码构造 DayPattern
func PatternOf(codes ...DayCode) DayPattern {
	var p DayPattern
	for _, c := range codes {
		if wd, ok := codeToWeekday[c]; ok {
			p |= 1 << uint(wd)
		}
	}
	return p
}

// Has 判断是否包含某个星期
func (p DayPattern) Has(wd time.Weekday) bool {
	return p&(1<<uint(wd)) != 0
}

// IsEmpty 空规则表示"不重复"
func (p DayPattern) IsEmpty() bool {
	return p&0x7f == 0
}

// Intersects 两个规则是否至少共享一天
func (p DayPattern) Intersects(other DayPattern) bool {
	return p&other&0x7f != 0
}

// Codes 按规范顺序返回星期代码
func (p DayPattern) Codes() []DayCode {
	codes := make([]DayCode, 0, 7)
	for wd, code := range dayOrder {
		if p.Has(time.Weekday(wd)) {
			codes = append(codes, code)
		}
	}
	return codes
}

// String 序列化为规范形式 "SU,M,T,W,TH,F,S" 的子集
func (p DayPattern) String() string {
	codes := p.Codes()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
