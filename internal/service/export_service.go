package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/dto"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/recurrence"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportSubjectInvalid = errors.New("导出对象类型无效")
	ErrExportGenerateFail   = errors.New("生成导出文件失败")
)

const icsProductID = "-//EduOps//Schedule Calendar//EN"

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportLoadReport 导出学生/教师负荷报表为 Excel
	ExportLoadReport(ctx context.Context, subjectType, subjectID, periodID string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出课表为 iCalendar，每次课一个 VEVENT
	ExportCalendar(ctx context.Context, q *dto.CalendarQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	report ReportService
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, report ReportService, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{repo: repo, report: report, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportLoadReport 导出负荷报表 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "负荷"：每行一条排课，末行为合计
//   - Sheet "重叠警告"：仅在存在重叠时生成

func (s *exportService) ExportLoadReport(ctx context.Context, subjectType, subjectID, periodID string) (*bytes.Buffer, string, error) {
	var (
		report *dto.LoadReportResponse
		err    error
	)
	switch subjectType {
	case subjectStudent:
		report, err = s.report.StudentLoad(ctx, subjectID, periodID)
	case subjectTeacher:
		report, err = s.report.TeacherLoad(ctx, subjectID, periodID)
	default:
		return nil, "", ErrExportSubjectInvalid
	}
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "负荷"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"课程代码", "课程名称", "星期", "时间", "开始日期", "结束日期", "课次", "课时"}
	widths := []float64{12, 28, 14, 14, 12, 12, 8, 10}
	for i, w := range widths {
		f.SetColWidth(sheetName, colName(i), colName(i), w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("%s负荷报表 %s", subjectLabel(subjectType), subjectID)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(headers)-1), row), headerStyle)

	// 数据行
	row = 3
	for _, item := range report.Items {
		values := []interface{}{
			item.CourseCode, item.CourseName, item.Days, item.Time,
			item.PeriodStart, item.PeriodEnd, item.SessionCount, hoursCell(item.Hours),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	// 合计行
	f.SetCellValue(sheetName, cell("A", row), "合计")
	f.SetCellValue(sheetName, cell(colName(6), row), report.TotalSessions)
	f.SetCellValue(sheetName, cell(colName(7), row), hoursCell(report.TotalHours))

	if len(report.Warnings) > 0 {
		warnSheet := "重叠警告"
		f.NewSheet(warnSheet)
		for i, h := range []string{"排课", "课程", "冲突排课", "冲突课程", "星期", "时间"} {
			f.SetCellValue(warnSheet, cell(colName(i), 1), h)
		}
		for i, w := range report.Warnings {
			r := i + 2
			f.SetCellValue(warnSheet, cell("A", r), w.ScheduleID)
			f.SetCellValue(warnSheet, cell("B", r), w.CourseName)
			f.SetCellValue(warnSheet, cell("C", r), w.ConflictsWith.ScheduleID)
			f.SetCellValue(warnSheet, cell("D", r), w.ConflictsWith.CourseName)
			f.SetCellValue(warnSheet, cell("E", r), w.ConflictsWith.Days)
			f.SetCellValue(warnSheet, cell("F", r), w.ConflictsWith.Time)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("load_%s_%s.xlsx", subjectType, subjectID)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar — iCalendar 课表
// ═══════════════════════════════════════════════════════════
//
// 排课时间为学校所在时区的墙上时间，写入时转换为 UTC。
// UID 由 schedule_id + 日期派生，重复导出时保持稳定。

func (s *exportService) ExportCalendar(ctx context.Context, q *dto.CalendarQuery) (*bytes.Buffer, string, error) {
	schedules, err := loadSubjectSchedules(ctx, s.repo, q.StudentID, q.TeacherID, q.AcademicPeriodID)
	if err != nil {
		if !errors.Is(err, ErrSubjectRequired) {
			s.logger.Error("加载日历排课失败", zap.Error(err))
		}
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := time.Now().UTC()
	for i := range schedules {
		sch := &schedules[i]
		engine := toEngineSchedule(sch)
		parsed, err := engine.Parse()
		if err != nil {
			s.logger.Warn("跳过字段不完整的排课", zap.String("schedule_id", sch.ScheduleID), zap.Error(err))
			continue
		}
		for _, d := range recurrence.ExpandDates(parsed.Pattern, parsed.Range) {
			uid := uuid.NewSHA1(uuid.NameSpaceURL, []byte(sch.ScheduleID+"/"+d.Format(dateLayout))).String()
			event := cal.AddEvent(uid + "@eduops")
			event.SetDtStampTime(stamp)
			event.SetStartAt(s.at(d, parsed.Window.Start))
			event.SetEndAt(s.at(d, parsed.Window.End))
			event.SetSummary(sch.CourseName())
			if sch.Location != "" {
				event.SetLocation(sch.Location)
			}
			event.SetDescription(fmt.Sprintf("%s %s", engine.Days, parsed.Window))
		}
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("写入 iCalendar 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	subject := q.StudentID
	if subject == "" {
		subject = q.TeacherID
	}
	return buf, fmt.Sprintf("calendar_%s.ics", subject), nil
}

// at 将日历日期与每日时刻组合为学校时区的时间点
func (s *exportService) at(date time.Time, c recurrence.Clock) time.Time {
	minutes := int(c)
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, s.loc)
}

// ── 辅助函数 ──

func subjectLabel(subjectType string) string {
	if subjectType == subjectTeacher {
		return "教师"
	}
	return "学生"
}

// hoursCell 可计算时写入数值，否则写入占位符
func hoursCell(h recurrence.Hours) interface{} {
	if !h.IsComputed() {
		return "-"
	}
	return h.Rounded()
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
