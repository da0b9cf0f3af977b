package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
	pkgerrors "github.com/EduOpsSolutions/EduOps-sub001/pkg/errors"
)

// ── Mock AcademicPeriodRepository ──

type mockAcademicPeriodRepo struct {
	periods map[string]*model.AcademicPeriod
}

func newMockAcademicPeriodRepo() *mockAcademicPeriodRepo {
	return &mockAcademicPeriodRepo{periods: make(map[string]*model.AcademicPeriod)}
}

func (m *mockAcademicPeriodRepo) Create(_ context.Context, period *model.AcademicPeriod) error {
	if period.AcademicPeriodID == "" {
		period.AcademicPeriodID = "period-" + period.Name
	}
	period.Version = 1
	m.periods[period.AcademicPeriodID] = period
	return nil
}

func (m *mockAcademicPeriodRepo) GetByID(_ context.Context, id string) (*model.AcademicPeriod, error) {
	if p, ok := m.periods[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAcademicPeriodRepo) GetCurrent(_ context.Context) (*model.AcademicPeriod, error) {
	for _, p := range m.periods {
		if p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAcademicPeriodRepo) List(_ context.Context) ([]model.AcademicPeriod, error) {
	var result []model.AcademicPeriod
	for _, p := range m.periods {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockAcademicPeriodRepo) Update(_ context.Context, period *model.AcademicPeriod) error {
	stored, ok := m.periods[period.AcademicPeriodID]
	if !ok || stored.Version != period.Version {
		return pkgerrors.ErrOptimisticLock
	}
	period.Version++
	cp := *period
	m.periods[period.AcademicPeriodID] = &cp
	return nil
}

func (m *mockAcademicPeriodRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.periods, id)
	return nil
}

func (m *mockAcademicPeriodRepo) ClearActive(_ context.Context) error {
	for _, p := range m.periods {
		p.IsActive = false
	}
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses   map[string]*model.Course
	createErr error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Code
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, activeOnly bool) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock ScheduleRepository ──

// mockScheduleRepo 以切片保存，List 保持插入顺序
type mockScheduleRepo struct {
	schedules []*model.Schedule
	courses   *mockCourseRepo
	seq       int
}

func newMockScheduleRepo(courses *mockCourseRepo) *mockScheduleRepo {
	return &mockScheduleRepo{courses: courses}
}

func (m *mockScheduleRepo) find(id string) (int, *model.Schedule) {
	for i, s := range m.schedules {
		if s.ScheduleID == id {
			return i, s
		}
	}
	return -1, nil
}

func (m *mockScheduleRepo) withCourse(s model.Schedule) model.Schedule {
	if c, ok := m.courses.courses[s.CourseID]; ok {
		s.Course = c
	}
	return s
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sched-%d", m.seq)
	}
	schedule.Version = 1
	cp := *schedule
	m.schedules = append(m.schedules, &cp)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if _, s := m.find(id); s != nil {
		cp := m.withCourse(*s)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if filter.AcademicPeriodID != "" && s.AcademicPeriodID != filter.AcademicPeriodID {
			continue
		}
		if filter.CourseID != "" && s.CourseID != filter.CourseID {
			continue
		}
		if filter.TeacherID != "" && s.TeacherID != filter.TeacherID {
			continue
		}
		result = append(result, m.withCourse(*s))
	}
	return result, nil
}

func (m *mockScheduleRepo) ListByTeacher(ctx context.Context, teacherID, periodID string) ([]model.Schedule, error) {
	return m.List(ctx, repository.ScheduleFilter{TeacherID: teacherID, AcademicPeriodID: periodID})
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	i, stored := m.find(schedule.ScheduleID)
	if stored == nil || stored.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version++
	cp := *schedule
	m.schedules[i] = &cp
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ string) error {
	if i, _ := m.find(id); i >= 0 {
		m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
	}
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments []*model.Enrollment
	schedules   *mockScheduleRepo
	seq         int
}

func newMockEnrollmentRepo(schedules *mockScheduleRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{schedules: schedules}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.EnrollmentID == "" {
		m.seq++
		enrollment.EnrollmentID = fmt.Sprintf("enr-%d", m.seq)
	}
	cp := *enrollment
	cp.Schedule = nil
	m.enrollments = append(m.enrollments, &cp)
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.EnrollmentID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetActive(_ context.Context, studentID, scheduleID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.ScheduleID == scheduleID && e.Status == "enrolled" {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID != studentID {
			continue
		}
		cp := *e
		if s, err := m.schedules.GetByID(ctx, e.ScheduleID); err == nil {
			cp.Schedule = s
		}
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListSchedulesByStudent(ctx context.Context, studentID, periodID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, e := range m.enrollments {
		if e.StudentID != studentID || e.Status != "enrolled" {
			continue
		}
		s, err := m.schedules.GetByID(ctx, e.ScheduleID)
		if err != nil {
			continue
		}
		if periodID != "" && s.AcademicPeriodID != periodID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockEnrollmentRepo) CountActiveBySchedule(_ context.Context, scheduleID string) (int64, error) {
	var n int64
	for _, e := range m.enrollments {
		if e.ScheduleID == scheduleID && e.Status == "enrolled" {
			n++
		}
	}
	return n, nil
}

func (m *mockEnrollmentRepo) Drop(_ context.Context, id string, _ string) error {
	for _, e := range m.enrollments {
		if e.EnrollmentID == id {
			e.Status = "dropped"
		}
	}
	return nil
}

// ── 测试仓储聚合 ──

type testRepos struct {
	period     *mockAcademicPeriodRepo
	course     *mockCourseRepo
	schedule   *mockScheduleRepo
	enrollment *mockEnrollmentRepo
}

func newTestRepos() *testRepos {
	courses := newMockCourseRepo()
	schedules := newMockScheduleRepo(courses)
	return &testRepos{
		period:     newMockAcademicPeriodRepo(),
		course:     courses,
		schedule:   schedules,
		enrollment: newMockEnrollmentRepo(schedules),
	}
}

// toRepository 不设置 db，BeginTx 返回 nil 事务
func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		AcademicPeriod: r.period,
		Course:         r.course,
		Schedule:       r.schedule,
		Enrollment:     r.enrollment,
	}
}
