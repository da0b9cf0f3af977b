package recurrence

import "time"

// Schedule 引擎读取的排课记录，字段保持后端原始字符串形式。
// 引擎只读取值拷贝，从不修改或缓存。
type Schedule struct {
	ID               string `json:"id,omitempty"`
	Days             string `json:"days"`
	TimeStart        string `json:"time_start"`
	TimeEnd          string `json:"time_end"`
	PeriodStart      string `json:"periodStart"`
	PeriodEnd        string `json:"periodEnd"`
	AcademicPeriodID string `json:"academicPeriodId"`
	CourseID         string `json:"courseId,omitempty"`
	CourseName       string `json:"courseName,omitempty"`
	TeacherID        string `json:"teacherId,omitempty"`
	StudentID        string `json:"studentId,omitempty"`
}

// Parsed 排课记录的解析结果
type Parsed struct {
	Pattern DayPattern
	Window  TimeWindow
	Range   DateRange
}

// Parse 解析全部字段；任一字段缺失或格式错误即返回错误。
// 记录上的空规则（days 为空白）视为字段缺失，而非“零次课”。
func (s Schedule) Parse() (Parsed, error) {
	pattern, err := ParseDayPattern(s.Days)
	if err != nil {
		return Parsed{}, err
	}
	if pattern.IsEmpty() {
		return Parsed{}, ErrInvalidDayCode
	}
	window, err := ParseTimeWindow(s.TimeStart, s.TimeEnd)
	if err != nil {
		return Parsed{}, err
	}
	r, err := ParseDateRange(s.PeriodStart, s.PeriodEnd)
	if err != nil {
		return Parsed{}, err
	}
	return Parsed{Pattern: pattern, Window: window, Range: r}, nil
}

// Validate 写入前校验：规则非空、时间窗口有效、日期区间不倒置
func (s Schedule) Validate() error {
	p, err := s.Parse()
	if err != nil {
		return err
	}
	if !p.Window.Valid() {
		return ErrEmptyWindow
	}
	if p.Range.Inverted() {
		return ErrInvertedRange
	}
	return nil
}

// DatesFor 展开排课记录的上课日期；数据不完整时返回 nil
func DatesFor(s Schedule) []time.Time {
	p, err := s.Parse()
	if err != nil {
		return nil
	}
	return ExpandDates(p.Pattern, p.Range)
}

// SessionsFor 排课记录的上课次数；数据不完整时为 0
func SessionsFor(s Schedule) int {
	p, err := s.Parse()
	if err != nil {
		return 0
	}
	return CountSessions(p.Pattern, p.Range)
}

// HoursFor 排课记录的总课时；数据不完整时为 NotComputable
func HoursFor(s Schedule) Hours {
	p, err := s.Parse()
	if err != nil {
		return NotComputable
	}
	return TotalHours(p.Pattern, p.Range, p.Window)
}

// OccursOn 排课记录在指定日期是否有课
func OccursOn(s Schedule, date time.Time) bool {
	p, err := s.Parse()
	if err != nil {
		return false
	}
	return Occurs(p.Pattern, p.Range, date)
}
