package recurrence

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Hours 课时计算结果：要么是已算出的数值（可能为 0），要么"无法计算"。
// 零值即"无法计算"，调用方据此区分 0 小时与数据不完整。
type Hours struct {
	value    float64
	computed bool
}

// NotComputable 无法计算（时间窗口无效、字段缺失或无法解析）
var NotComputable = Hours{}

// HoursOf 构造已计算的课时
func HoursOf(v float64) Hours {
	return Hours{value: v, computed: true}
}

// Value 返回未舍入的原始值
func (h Hours) Value() (float64, bool) {
	return h.value, h.computed
}

// IsComputed 是否已算出
func (h Hours) IsComputed() bool {
	return h.computed
}

// Rounded 保留一位小数；仅在最终输出时调用
func (h Hours) Rounded() float64 {
	return math.Round(h.value*10) / 10
}

// String 一位小数且去掉 ".0"（"3" 而非 "3.0"）；无法计算时返回空串
func (h Hours) String() string {
	if !h.computed {
		return ""
	}
	s := strconv.FormatFloat(h.Rounded(), 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// MarshalJSON 输出字符串形式，无法计算时输出 null
func (h Hours) MarshalJSON() ([]byte, error) {
	if !h.computed {
		return []byte("null"), nil
	}
	return json.Marshal(h.String())
}

// UnmarshalJSON 接受字符串、数字或 null
func (h *Hours) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*h = NotComputable
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*h = HoursOf(f)
		return nil
	}
	if s == "" {
		*h = NotComputable
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*h = HoursOf(f)
	return nil
}

// TotalHours 计算区间内总课时 = 每次课时长 × 命中日期数
//
// 时间窗口长度 <= 0 返回 NotComputable（而不是 0）。
// 在分钟层面累加后再换算小时，避免逐次舍入误差。
func TotalHours(pattern DayPattern, r DateRange, w TimeWindow) Hours {
	if !w.Valid() {
		return NotComputable
	}
	sessions := CountSessions(pattern, r)
	return HoursOf(float64(w.Minutes()*sessions) / 60)
}

// SumHours 汇总多条课时：跳过无法计算的项，全部无法计算时结果也无法计算。
// 没有任何输入时结果为 0。
func SumHours(hs ...Hours) Hours {
	if len(hs) == 0 {
		return HoursOf(0)
	}
	var total float64
	found := false
	for _, h := range hs {
		if v, ok := h.Value(); ok {
			total += v
			found = true
		}
	}
	if !found {
		return NotComputable
	}
	return HoursOf(total)
}
