package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
)

// ── 测试辅助 ──

func setupTestAcademicPeriodService() (AcademicPeriodService, *testRepos) {
	repos := newTestRepos()
	svc := NewAcademicPeriodService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

// ── Create 测试 ──

func TestAcademicPeriodService_Create_Success(t *testing.T) {
	svc, _ := setupTestAcademicPeriodService()

	req := &dto.CreateAcademicPeriodRequest{
		Name:      "2024 Spring",
		StartDate: "2024-01-08",
		EndDate:   "2024-05-10",
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.IsActive {
		t.Error("新创建学期不应默认激活")
	}
	if result.Status != "open" {
		t.Errorf("期望Status=open，实际=%s", result.Status)
	}
	if result.StartDate != "2024-01-08" || result.EndDate != "2024-05-10" {
		t.Errorf("日期不符: %s ~ %s", result.StartDate, result.EndDate)
	}
}

func TestAcademicPeriodService_Create_SingleDayAllowed(t *testing.T) {
	svc, _ := setupTestAcademicPeriodService()

	req := &dto.CreateAcademicPeriodRequest{Name: "Orientation", StartDate: "2024-08-19", EndDate: "2024-08-19"}
	if _, err := svc.Create(context.Background(), req, "admin-001"); err != nil {
		t.Errorf("单日学期应允许: %v", err)
	}
}

func TestAcademicPeriodService_Create_InvalidDate(t *testing.T) {
	svc, _ := setupTestAcademicPeriodService()

	cases := []*dto.CreateAcademicPeriodRequest{
		{Name: "倒置", StartDate: "2024-05-10", EndDate: "2024-01-08"},
		{Name: "格式错误", StartDate: "invalid-date", EndDate: "2024-05-10"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req, "admin-001")
		if !errors.Is(err, ErrAcademicPeriodDateInvalid) {
			t.Errorf("%s: 期望 ErrAcademicPeriodDateInvalid，实际: %v", req.Name, err)
		}
	}
}

// ── GetByID / GetCurrent 测试 ──

func TestAcademicPeriodService_GetByID(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()

	result, err := svc.GetByID(context.Background(), testPeriodID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Name != "2024 Spring" {
		t.Errorf("期望Name=2024 Spring，实际=%s", result.Name)
	}

	if _, err := svc.GetByID(context.Background(), "nonexistent"); !errors.Is(err, ErrAcademicPeriodNotFound) {
		t.Errorf("期望 ErrAcademicPeriodNotFound，实际: %v", err)
	}
}

func TestAcademicPeriodService_GetCurrent_NotFound(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()

	if _, err := svc.GetCurrent(context.Background()); !errors.Is(err, ErrAcademicPeriodNotFound) {
		t.Errorf("无激活学期时期望 ErrAcademicPeriodNotFound，实际: %v", err)
	}
}

// ── Activate 测试 ──

func TestAcademicPeriodService_Activate_SwitchesActive(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.period.periods["p-a"] = &model.AcademicPeriod{
		AcademicPeriodID: "p-a", Name: "A", StartDate: day("2023-08-01"), EndDate: day("2023-12-20"),
		IsActive: true, VersionedModel: model.VersionedModel{Version: 1},
	}
	repos.period.periods["p-b"] = &model.AcademicPeriod{
		AcademicPeriodID: "p-b", Name: "B", StartDate: day("2024-01-08"), EndDate: day("2024-05-10"),
		VersionedModel: model.VersionedModel{Version: 1},
	}

	if err := svc.Activate(context.Background(), "p-b", "admin-001"); err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}
	if repos.period.periods["p-a"].IsActive {
		t.Error("p-a 应被取消激活")
	}
	if !repos.period.periods["p-b"].IsActive {
		t.Error("p-b 应被激活")
	}

	current, err := svc.GetCurrent(context.Background())
	if err != nil || current.ID != "p-b" {
		t.Errorf("当前学期应为 p-b，实际 %+v err=%v", current, err)
	}
}

func TestAcademicPeriodService_Activate_NotFound(t *testing.T) {
	svc, _ := setupTestAcademicPeriodService()

	if err := svc.Activate(context.Background(), "nonexistent", "admin-001"); !errors.Is(err, ErrAcademicPeriodNotFound) {
		t.Errorf("期望 ErrAcademicPeriodNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestAcademicPeriodService_Update_RejectsInvertedRange(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()

	end := "2023-12-01"
	_, err := svc.Update(context.Background(), testPeriodID, &dto.UpdateAcademicPeriodRequest{EndDate: &end}, "admin-001")
	if !errors.Is(err, ErrAcademicPeriodDateInvalid) {
		t.Errorf("期望 ErrAcademicPeriodDateInvalid，实际: %v", err)
	}
}

func TestAcademicPeriodService_Update_BumpsVersion(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()

	name := "2024 Spring Term"
	status := "closed"
	result, err := svc.Update(context.Background(), testPeriodID, &dto.UpdateAcademicPeriodRequest{Name: &name, Status: &status}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != name || result.Status != "closed" {
		t.Errorf("更新结果不符: %+v", result)
	}
	if result.Version != 2 {
		t.Errorf("期望 version=2，实际 %d", result.Version)
	}
}

func TestAcademicPeriodService_Update_MustCoverSchedules(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()
	repos.seedSchedule("s1", "course-alg", testTeacher, "M,W", "09:00", "10:00", "2024-01-08", "2024-05-10")

	end := "2024-04-30"
	_, err := svc.Update(context.Background(), testPeriodID, &dto.UpdateAcademicPeriodRequest{EndDate: &end}, "admin-001")
	if !errors.Is(err, ErrAcademicPeriodCutsSchedule) {
		t.Fatalf("收缩至排课之外期望 ErrAcademicPeriodCutsSchedule，实际: %v", err)
	}
	if repos.period.periods[testPeriodID].Version != 1 {
		t.Error("校验失败时不应写库")
	}

	end = "2024-05-10"
	if _, err := svc.Update(context.Background(), testPeriodID, &dto.UpdateAcademicPeriodRequest{EndDate: &end}, "admin-001"); err != nil {
		t.Errorf("仍覆盖排课时应允许收缩: %v", err)
	}
}

// ── Delete 测试 ──

func TestAcademicPeriodService_Delete_HasSchedules(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()
	repos.seedSchedule("s1", "course-alg", testTeacher, "M", "09:00", "10:00", "2024-01-08", "2024-05-10")

	if err := svc.Delete(context.Background(), testPeriodID, "admin-001"); !errors.Is(err, ErrAcademicPeriodHasSchedules) {
		t.Fatalf("期望 ErrAcademicPeriodHasSchedules，实际: %v", err)
	}
	if _, ok := repos.period.periods[testPeriodID]; !ok {
		t.Error("学期不应被删除")
	}
}

func TestAcademicPeriodService_Delete(t *testing.T) {
	svc, repos := setupTestAcademicPeriodService()
	repos.seedBasics()

	if err := svc.Delete(context.Background(), testPeriodID, "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := repos.period.periods[testPeriodID]; ok {
		t.Error("学期应已被删除")
	}
	if err := svc.Delete(context.Background(), testPeriodID, "admin-001"); !errors.Is(err, ErrAcademicPeriodNotFound) {
		t.Errorf("重复删除期望 ErrAcademicPeriodNotFound，实际: %v", err)
	}
}
