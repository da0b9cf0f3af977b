package recurrence

import "testing"

func existing(id, course, days, start, end, period string) Schedule {
	return Schedule{
		ID: id, CourseName: course, Days: days,
		TimeStart: start, TimeEnd: end,
		PeriodStart: "2024-01-08", PeriodEnd: "2024-05-10",
		AcademicPeriodID: period,
	}
}

func TestFindConflicts_Overlap(t *testing.T) {
	c := Candidate{Days: "M", TimeStart: "09:00", TimeEnd: "10:00", PeriodID: "P1"}
	res := FindConflicts(c, []Schedule{existing("s1", "Algebra", "M,W", "09:30", "10:30", "P1")})

	if !res.HasConflicts {
		t.Fatal("期望检测到冲突")
	}
	if res.ConflictingSchedule == nil {
		t.Fatal("冲突详情不应为 nil")
	}
	if res.ConflictingSchedule.CourseName != "Algebra" || res.ConflictingSchedule.Time != "09:30-10:30" {
		t.Errorf("冲突详情不符: %+v", res.ConflictingSchedule)
	}
	if res.ConflictingSchedule.Days != "M,W" {
		t.Errorf("期望原样返回 days=M,W，实际 %s", res.ConflictingSchedule.Days)
	}
}

func TestFindConflicts_AdjacentDoesNotConflict(t *testing.T) {
	c := Candidate{Days: "M", TimeStart: "10:00", TimeEnd: "11:00", PeriodID: "P1"}
	res := FindConflicts(c, []Schedule{existing("s1", "Algebra", "M", "09:00", "10:00", "P1")})
	if res.HasConflicts {
		t.Errorf("首尾相接不应冲突: %+v", res.ConflictingSchedule)
	}

	c = Candidate{Days: "M", TimeStart: "08:00", TimeEnd: "09:00", PeriodID: "P1"}
	if FindConflicts(c, []Schedule{existing("s1", "Algebra", "M", "09:00", "10:00", "P1")}).HasConflicts {
		t.Error("在已有排课之前结束也不应冲突")
	}
}

func TestFindConflicts_DifferentPeriod(t *testing.T) {
	c := Candidate{Days: "M,W", TimeStart: "09:00", TimeEnd: "10:00", PeriodID: "P2"}
	res := FindConflicts(c, []Schedule{existing("s1", "Algebra", "M,W", "09:00", "10:00", "P1")})
	if res.HasConflicts {
		t.Error("不同学期不应冲突")
	}
}

func TestFindConflicts_NoSharedDay(t *testing.T) {
	c := Candidate{Days: "T,TH", TimeStart: "09:00", TimeEnd: "10:00", PeriodID: "P1"}
	res := FindConflicts(c, []Schedule{existing("s1", "Algebra", "M,W,F", "09:00", "10:00", "P1")})
	if res.HasConflicts {
		t.Error("没有共同星期不应冲突")
	}
}

func TestFindConflicts_FirstMatchWins(t *testing.T) {
	c := Candidate{Days: "W", TimeStart: "13:00", TimeEnd: "15:00", PeriodID: "P1"}
	list := []Schedule{
		existing("s0", "Biology", "T", "13:00", "15:00", "P1"),
		existing("s1", "Chemistry", "W", "14:00", "16:00", "P1"),
		existing("s2", "Physics", "W", "12:00", "13:30", "P1"),
	}
	res := FindConflicts(c, list)
	if !res.HasConflicts || res.ConflictingSchedule.ScheduleID != "s1" {
		t.Errorf("期望第一条冲突为 s1，实际 %+v", res.ConflictingSchedule)
	}

	all := ListConflicts(c, list)
	if len(all) != 2 || all[0].ScheduleID != "s1" || all[1].ScheduleID != "s2" {
		t.Errorf("ListConflicts 期望 [s1 s2]，实际 %+v", all)
	}
}

func TestFindConflicts_ExcludeSelf(t *testing.T) {
	self := existing("s1", "Algebra", "M", "09:00", "10:00", "P1")
	c := CandidateOf(self)
	if FindConflicts(c, []Schedule{self}).HasConflicts {
		t.Error("编辑时不应与自身冲突")
	}
}

func TestFindConflicts_MalformedInputs(t *testing.T) {
	good := existing("s1", "Algebra", "M", "09:00", "10:00", "P1")

	cases := []Candidate{
		{Days: "", TimeStart: "09:00", TimeEnd: "10:00", PeriodID: "P1"},
		{Days: "M", TimeStart: "xx", TimeEnd: "10:00", PeriodID: "P1"},
		{Days: "M", TimeStart: "10:00", TimeEnd: "09:00", PeriodID: "P1"},
		{Days: "M", TimeStart: "09:00", TimeEnd: "10:00", PeriodID: ""},
	}
	for i, c := range cases {
		if FindConflicts(c, []Schedule{good}).HasConflicts {
			t.Errorf("case %d: 候选数据不完整应视为无冲突", i)
		}
	}

	c := Candidate{Days: "M", TimeStart: "09:00", TimeEnd: "10:00", PeriodID: "P1"}
	if FindConflicts(c, nil).HasConflicts {
		t.Error("无已有排课时不应冲突")
	}
	broken := existing("s2", "Broken", "M", "09:00", "", "P1")
	if FindConflicts(c, []Schedule{broken}).HasConflicts {
		t.Error("已有记录字段缺失应被跳过")
	}
}

func TestFindConflicts_SecondsInStoredTimes(t *testing.T) {
	c := Candidate{Days: "f", TimeStart: "15:00", TimeEnd: "16:00", PeriodID: "P1"}
	res := FindConflicts(c, []Schedule{existing("s1", "Art", "F", "15:30:00", "17:00:00", "P1")})
	if !res.HasConflicts || res.ConflictingSchedule.Time != "15:30-17:00" {
		t.Errorf("期望冲突且时间规范化为 15:30-17:00，实际 %+v", res.ConflictingSchedule)
	}
}
