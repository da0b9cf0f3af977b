package recurrence

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) DateRange {
	return DateRange{Start: date(start), End: date(end)}
}

func formatDates(ds []time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format("2006-01-02")
	}
	return out
}

func TestExpandDates_SingleDay(t *testing.T) {
	// 2024-01-01 为周一
	got := ExpandDates(PatternOf(Monday), rng("2024-01-01", "2024-01-01"))
	if len(got) != 1 || !got[0].Equal(date("2024-01-01")) {
		t.Fatalf("期望仅 2024-01-01，实际 %v", formatDates(got))
	}

	none := ExpandDates(PatternOf(Tuesday), rng("2024-01-01", "2024-01-01"))
	if len(none) != 0 {
		t.Errorf("周二规则在周一单日区间应为空，实际 %v", formatDates(none))
	}
}

func TestExpandDates_InvertedRange(t *testing.T) {
	got := ExpandDates(PatternOf(Monday, Wednesday), rng("2024-02-01", "2024-01-01"))
	if got != nil {
		t.Errorf("倒置区间应返回空，实际 %v", formatDates(got))
	}
}

func TestExpandDates_EmptyPattern(t *testing.T) {
	if got := ExpandDates(0, rng("2024-01-01", "2024-12-31")); len(got) != 0 {
		t.Errorf("空规则应返回空，实际 %d 个日期", len(got))
	}
}

func TestExpandDates_AscendingAndIdempotent(t *testing.T) {
	p := PatternOf(Monday, Wednesday, Friday)
	r := rng("2024-01-01", "2024-01-19")

	first := ExpandDates(p, r)
	second := ExpandDates(p, r)

	want := []string{
		"2024-01-01", "2024-01-03", "2024-01-05",
		"2024-01-08", "2024-01-10", "2024-01-12",
		"2024-01-15", "2024-01-17", "2024-01-19",
	}
	if len(first) != len(want) {
		t.Fatalf("期望 %d 个日期，实际 %v", len(want), formatDates(first))
	}
	for i := range want {
		if first[i].Format("2006-01-02") != want[i] {
			t.Errorf("第 %d 个日期期望 %s，实际 %s", i, want[i], first[i].Format("2006-01-02"))
		}
		if !first[i].Equal(second[i]) {
			t.Errorf("两次调用结果不一致: %s vs %s", first[i], second[i])
		}
	}
}

func TestExpandDates_LeapDay(t *testing.T) {
	// 2024-02-29 为周四
	got := ExpandDates(PatternOf(Thursday), rng("2024-02-26", "2024-03-04"))
	if len(got) != 1 || got[0].Format("2006-01-02") != "2024-02-29" {
		t.Errorf("期望 [2024-02-29]，实际 %v", formatDates(got))
	}

	// 非闰年 2023-02-28 为周二，次日即 3 月 1 日
	got = ExpandDates(PatternOf(Tuesday, Wednesday), rng("2023-02-27", "2023-03-02"))
	want := []string{"2023-02-28", "2023-03-01"}
	if s := formatDates(got); len(s) != 2 || s[0] != want[0] || s[1] != want[1] {
		t.Errorf("期望 %v，实际 %v", want, s)
	}
}

func TestExpandDates_BoundedByRangeLength(t *testing.T) {
	all := PatternOf(Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday)
	r := rng("2024-01-01", "2024-03-31")
	got := ExpandDates(all, r)
	if len(got) != r.Days() {
		t.Errorf("全周规则应命中每一天: 期望 %d，实际 %d", r.Days(), len(got))
	}
	if r.Days() != 91 {
		t.Errorf("2024 Q1 共 91 天，实际 %d", r.Days())
	}
}

func TestCountSessions_MatchesExpand(t *testing.T) {
	p := PatternOf(Tuesday, Thursday, Saturday)
	r := rng("2023-08-14", "2023-12-15")
	if CountSessions(p, r) != len(ExpandDates(p, r)) {
		t.Errorf("CountSessions 与 ExpandDates 长度不一致")
	}
}

func TestOccurs(t *testing.T) {
	p := PatternOf(Monday, Wednesday)
	r := rng("2024-01-01", "2024-01-31")

	if !Occurs(p, r, date("2024-01-03")) {
		t.Error("2024-01-03 周三应有课")
	}
	if Occurs(p, r, date("2024-01-04")) {
		t.Error("2024-01-04 周四不应有课")
	}
	if Occurs(p, r, date("2024-02-05")) {
		t.Error("区间外的周一不应有课")
	}
	// 带时区的时间点按其本地日期判断
	loc := time.FixedZone("UTC+8", 8*3600)
	if !Occurs(p, r, time.Date(2024, 1, 8, 23, 30, 0, 0, loc)) {
		t.Error("本地日期 2024-01-08 周一应有课")
	}
}

func TestParseDate_Formats(t *testing.T) {
	d, err := ParseDate("2024-03-01T10:00:00+08:00")
	if err != nil {
		t.Fatalf("RFC3339 应可解析: %v", err)
	}
	if d.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("期望 2024-03-01，实际 %s", d.Format("2006-01-02"))
	}
	if _, err := ParseDate("03/01/2024"); err == nil {
		t.Error("非 ISO 日期应报错")
	}
}
