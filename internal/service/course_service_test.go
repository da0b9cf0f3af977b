package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
)

func TestCourseService_Create_NormalizesCode(t *testing.T) {
	repos := newTestRepos()
	svc := NewCourseService(repos.toRepository(), zap.NewNop())

	result, err := svc.Create(context.Background(), &dto.CreateCourseRequest{Code: " math201 ", Name: "Calculus", Units: 4}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Code != "MATH201" {
		t.Errorf("期望代码规范为 MATH201，实际 %s", result.Code)
	}

	_, err = svc.Create(context.Background(), &dto.CreateCourseRequest{Code: "MATH201", Name: "Calculus II"}, "admin-001")
	if !errors.Is(err, ErrCourseCodeExists) {
		t.Errorf("期望 ErrCourseCodeExists，实际: %v", err)
	}
}

func TestCourseService_Create_UniqueViolation(t *testing.T) {
	repos := newTestRepos()
	repos.course.createErr = gorm.ErrDuplicatedKey
	svc := NewCourseService(repos.toRepository(), zap.NewNop())

	_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{Code: "CHEM100", Name: "Chemistry"}, "admin-001")
	if !errors.Is(err, ErrCourseCodeExists) {
		t.Errorf("唯一约束冲突应映射为 ErrCourseCodeExists，实际: %v", err)
	}
}

func TestCourseService_GetByID_NotFound(t *testing.T) {
	repos := newTestRepos()
	svc := NewCourseService(repos.toRepository(), zap.NewNop())

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestCourseService_List_ActiveOnly(t *testing.T) {
	repos := newTestRepos()
	repos.seedBasics()
	repos.course.courses["course-bio"].IsActive = false
	svc := NewCourseService(repos.toRepository(), zap.NewNop())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Code != "MATH101" {
		t.Errorf("期望仅返回启用课程 MATH101，实际 %+v", list)
	}
}
