package recurrence

import "errors"

// 解析阶段错误。引擎的计算函数本身从不向外返回错误，
// 这些错误只在调用方需要做写入前校验时使用（例如创建排课）。
var (
	ErrInvalidDayCode = errors.New("无效的星期代码")
	ErrInvalidClock   = errors.New("无效的时间格式，应为 HH:MM")
	ErrInvalidDate    = errors.New("无效的日期格式，应为 YYYY-MM-DD")
	ErrEmptyWindow    = errors.New("结束时间必须晚于开始时间")
	ErrInvertedRange  = errors.New("结束日期不能早于开始日期")
)
