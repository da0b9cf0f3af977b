package recurrence

// ── 冲突检测 ──────────────────────────────────────────────
//
// 两条排课冲突，当且仅当：
//   1. 属于同一学期（academicPeriodId 相等）
//   2. 重复规则至少共享一天
//   3. 时间窗口半开区间重叠：a.start < b.end && b.start < a.end
//      （08:00-09:00 与 09:00-10:00 首尾相接，不算冲突）
// ─────────────────────────────────────────────────────────────

// Candidate 待检测的排课（新建或编辑中）
type Candidate struct {
	Days      string `json:"days"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
	PeriodID  string `json:"periodId"`
	// ExcludeID 编辑已有排课时跳过其自身
	ExcludeID string `json:"excludeId,omitempty"`
}

// ConflictDetail 冲突排课的描述信息
type ConflictDetail struct {
	ScheduleID string `json:"scheduleId,omitempty"`
	CourseName string `json:"courseName"`
	Days       string `json:"days"`
	Time       string `json:"time"`
}

// ConflictResult 冲突检测结果
type ConflictResult struct {
	HasConflicts        bool            `json:"hasConflicts"`
	ConflictingSchedule *ConflictDetail `json:"conflictingSchedule,omitempty"`
}

type parsedCandidate struct {
	pattern  DayPattern
	window   TimeWindow
	periodID string
}

func (c Candidate) parse() (parsedCandidate, bool) {
	if c.PeriodID == "" {
		return parsedCandidate{}, false
	}
	pattern, err := ParseDayPattern(c.Days)
	if err != nil || pattern.IsEmpty() {
		return parsedCandidate{}, false
	}
	window, err := ParseTimeWindow(c.TimeStart, c.TimeEnd)
	if err != nil || !window.Valid() {
		return parsedCandidate{}, false
	}
	return parsedCandidate{pattern: pattern, window: window, periodID: c.PeriodID}, true
}

// conflictsWith 单条已有排课是否与候选冲突；已有记录字段不完整时视为不冲突
func (pc parsedCandidate) conflictsWith(s Schedule) (TimeWindow, bool) {
	if s.AcademicPeriodID != pc.periodID {
		return TimeWindow{}, false
	}
	pattern, err := ParseDayPattern(s.Days)
	if err != nil || !pattern.Intersects(pc.pattern) {
		return TimeWindow{}, false
	}
	window, err := ParseTimeWindow(s.TimeStart, s.TimeEnd)
	if err != nil || !window.Valid() {
		return TimeWindow{}, false
	}
	return window, window.Overlaps(pc.window)
}

func detailOf(s Schedule, w TimeWindow) *ConflictDetail {
	return &ConflictDetail{
		ScheduleID: s.ID,
		CourseName: s.CourseName,
		Days:       s.Days,
		Time:       w.String(),
	}
}

// FindConflicts 按输入顺序返回第一条冲突。
// 输入为空或候选数据不完整时返回 {HasConflicts: false}。
func FindConflicts(c Candidate, existing []Schedule) ConflictResult {
	pc, ok := c.parse()
	if !ok {
		return ConflictResult{}
	}
	for _, s := range existing {
		if c.ExcludeID != "" && s.ID == c.ExcludeID {
			continue
		}
		if w, hit := pc.conflictsWith(s); hit {
			return ConflictResult{HasConflicts: true, ConflictingSchedule: detailOf(s, w)}
		}
	}
	return ConflictResult{}
}

// ListConflicts 返回全部冲突（保持输入顺序），供负荷报表展示重叠警告
func ListConflicts(c Candidate, existing []Schedule) []ConflictDetail {
	pc, ok := c.parse()
	if !ok {
		return nil
	}
	var result []ConflictDetail
	for _, s := range existing {
		if c.ExcludeID != "" && s.ID == c.ExcludeID {
			continue
		}
		if w, hit := pc.conflictsWith(s); hit {
			result = append(result, *detailOf(s, w))
		}
	}
	return result
}

// CandidateOf 以已有排课构造候选（自身被排除）
func CandidateOf(s Schedule) Candidate {
	return Candidate{
		Days:      s.Days,
		TimeStart: s.TimeStart,
		TimeEnd:   s.TimeEnd,
		PeriodID:  s.AcademicPeriodID,
		ExcludeID: s.ID,
	}
}
