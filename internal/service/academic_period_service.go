package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/model"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
)

// ── 学期模块业务错误 ──

var (
	ErrAcademicPeriodNotFound     = errors.New("学期不存在")
	ErrAcademicPeriodDateInvalid  = errors.New("学期日期格式错误或结束日期早于开始日期")
	ErrAcademicPeriodHasSchedules = errors.New("学期下仍有排课，无法删除")
	ErrAcademicPeriodCutsSchedule = errors.New("调整后的学期日期无法覆盖已有排课")
)

// AcademicPeriodService 学期业务接口
type AcademicPeriodService interface {
	Create(ctx context.Context, req *dto.CreateAcademicPeriodRequest, callerID string) (*dto.AcademicPeriodResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AcademicPeriodResponse, error)
	GetCurrent(ctx context.Context) (*dto.AcademicPeriodResponse, error)
	List(ctx context.Context) ([]dto.AcademicPeriodResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAcademicPeriodRequest, callerID string) (*dto.AcademicPeriodResponse, error)
	Activate(ctx context.Context, id string, callerID string) error
	Delete(ctx context.Context, id string, callerID string) error
}

type academicPeriodService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAcademicPeriodService 创建 AcademicPeriodService 实例
func NewAcademicPeriodService(repo *repository.Repository, logger *zap.Logger) AcademicPeriodService {
	return &academicPeriodService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *academicPeriodService) Create(ctx context.Context, req *dto.CreateAcademicPeriodRequest, callerID string) (*dto.AcademicPeriodResponse, error) {
	r, err := recurrence.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil || r.Inverted() {
		return nil, ErrAcademicPeriodDateInvalid
	}

	period := &model.AcademicPeriod{
		Name:      req.Name,
		StartDate: r.Start,
		EndDate:   r.End,
		IsActive:  false,
		Status:    "open",
	}
	period.MarkCreated(callerID)

	if err := s.repo.AcademicPeriod.Create(ctx, period); err != nil {
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, err
	}

	return toAcademicPeriodResponse(period), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *academicPeriodService) GetByID(ctx context.Context, id string) (*dto.AcademicPeriodResponse, error) {
	period, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAcademicPeriodResponse(period), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *academicPeriodService) GetCurrent(ctx context.Context) (*dto.AcademicPeriodResponse, error) {
	period, err := s.repo.AcademicPeriod.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAcademicPeriodNotFound
		}
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, err
	}

	return toAcademicPeriodResponse(period), nil
}

// ────────────────────── List ──────────────────────

func (s *academicPeriodService) List(ctx context.Context) ([]dto.AcademicPeriodResponse, error) {
	periods, err := s.repo.AcademicPeriod.List(ctx)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AcademicPeriodResponse, 0, len(periods))
	for i := range periods {
		result = append(result, *toAcademicPeriodResponse(&periods[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *academicPeriodService) Update(ctx context.Context, id string, req *dto.UpdateAcademicPeriodRequest, callerID string) (*dto.AcademicPeriodResponse, error) {
	period, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		period.Name = *req.Name
	}
	if req.StartDate != nil {
		d, err := recurrence.ParseDate(*req.StartDate)
		if err != nil {
			return nil, ErrAcademicPeriodDateInvalid
		}
		period.StartDate = d
	}
	if req.EndDate != nil {
		d, err := recurrence.ParseDate(*req.EndDate)
		if err != nil {
			return nil, ErrAcademicPeriodDateInvalid
		}
		period.EndDate = d
	}
	bounds := recurrence.NewDateRange(period.StartDate, period.EndDate)
	if bounds.Inverted() {
		return nil, ErrAcademicPeriodDateInvalid
	}
	if req.StartDate != nil || req.EndDate != nil {
		if err := s.ensureCoversSchedules(ctx, id, bounds); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		period.Status = *req.Status
	}

	period.MarkUpdated(callerID)

	if err := s.repo.AcademicPeriod.Update(ctx, period); err != nil {
		s.logger.Error("更新学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAcademicPeriodResponse(period), nil
}

// ────────────────────── Activate ──────────────────────

func (s *academicPeriodService) Activate(ctx context.Context, id string, callerID string) error {
	period, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	// 使用事务保证 ClearActive + Update 的原子性
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.AcademicPeriod.ClearActive(ctx); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("清除活动学期失败", zap.Error(err))
		return err
	}

	period.IsActive = true
	period.MarkUpdated(callerID)

	if err := txRepo.AcademicPeriod.Update(ctx, period); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("激活学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("学期已激活", zap.String("id", id), zap.String("caller", callerID))
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *academicPeriodService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{AcademicPeriodID: id})
	if err != nil {
		s.logger.Error("查询学期排课失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if len(schedules) > 0 {
		return ErrAcademicPeriodHasSchedules
	}

	if err := s.repo.AcademicPeriod.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *academicPeriodService) load(ctx context.Context, id string) (*model.AcademicPeriod, error) {
	period, err := s.repo.AcademicPeriod.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAcademicPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return period, nil
}

// ensureCoversSchedules 学期日期收缩后，已有排课的日期区间仍须落在学期内
func (s *academicPeriodService) ensureCoversSchedules(ctx context.Context, id string, bounds recurrence.DateRange) error {
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{AcademicPeriodID: id})
	if err != nil {
		s.logger.Error("查询学期排课失败", zap.String("id", id), zap.Error(err))
		return err
	}
	for i := range schedules {
		if !bounds.Contains(schedules[i].PeriodStart) || !bounds.Contains(schedules[i].PeriodEnd) {
			return ErrAcademicPeriodCutsSchedule
		}
	}
	return nil
}

func toAcademicPeriodResponse(p *model.AcademicPeriod) *dto.AcademicPeriodResponse {
	return &dto.AcademicPeriodResponse{
		ID:        p.AcademicPeriodID,
		Name:      p.Name,
		StartDate: p.StartDate.Format(dateLayout),
		EndDate:   p.EndDate.Format(dateLayout),
		IsActive:  p.IsActive,
		Status:    p.Status,
		Version:   p.Version,
		CreatedAt: p.CreatedAt.Format(timestampLayout),
		UpdatedAt: p.UpdatedAt.Format(timestampLayout),
	}
}
