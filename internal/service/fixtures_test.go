package service

import (
	"time"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
)

const (
	testTeacher  = "teacher-1"
	testStudent  = "student-1"
	testPeriodID = "period-2024S"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedBasics 预置一个学期（2024-01-01 ~ 2024-05-31）与两门课程
func (r *testRepos) seedBasics() {
	r.period.periods[testPeriodID] = &model.AcademicPeriod{
		AcademicPeriodID: testPeriodID,
		Name:             "2024 Spring",
		StartDate:        day("2024-01-01"),
		EndDate:          day("2024-05-31"),
		Status:           "open",
		VersionedModel:   model.VersionedModel{Version: 1},
	}
	r.course.courses["course-alg"] = &model.Course{CourseID: "course-alg", Code: "MATH101", Name: "Algebra", Units: 3, IsActive: true}
	r.course.courses["course-bio"] = &model.Course{CourseID: "course-bio", Code: "BIO110", Name: "Biology", Units: 4, IsActive: true}
}

// seedSchedule 直接写入一条排课，绕过业务校验
func (r *testRepos) seedSchedule(id, courseID, teacherID, days, start, end, from, to string) *model.Schedule {
	s := &model.Schedule{
		ScheduleID:       id,
		CourseID:         courseID,
		TeacherID:        teacherID,
		AcademicPeriodID: testPeriodID,
		Days:             days,
		TimeStart:        start,
		TimeEnd:          end,
		PeriodStart:      day(from),
		PeriodEnd:        day(to),
	}
	s.Version = 1
	r.schedule.schedules = append(r.schedule.schedules, s)
	return s
}

func (r *testRepos) seedEnrollment(studentID, scheduleID string) {
	r.enrollment.enrollments = append(r.enrollment.enrollments, &model.Enrollment{
		EnrollmentID: "enr-" + studentID + "-" + scheduleID,
		StudentID:    studentID,
		ScheduleID:   scheduleID,
		Status:       "enrolled",
	})
}
