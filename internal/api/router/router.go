package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EduOpsSolutions/EduOps-sub001/config"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/api/handler"
	"github.com/EduOpsSolutions/EduOps-sub001/internal/api/middleware"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/jwt"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不启用 Token 黑名单与限流；db 为 nil 时健康检查跳过数据库
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// 避免把 nil *redis.Client 装进非 nil 接口
	var (
		denylist middleware.TokenDenylist
		limiter  middleware.RateLimiter
	)
	if rdb != nil {
		denylist = rdb
		if cfg.RateLimit.Enabled {
			limiter = rdb
		}
	}

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db, rdb))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, denylist, logger))
	{
		writers := []gin.HandlerFunc{
			middleware.RoleAuth(middleware.RoleAdmin, middleware.RoleRegistrar),
			middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger),
		}
		write := func(hf gin.HandlerFunc) []gin.HandlerFunc {
			return append(append([]gin.HandlerFunc{}, writers...), hf)
		}

		// 学期模块
		periods := v1.Group("/academic-periods")
		{
			periods.GET("", h.AcademicPeriod.List)
			periods.GET("/current", h.AcademicPeriod.GetCurrent)
			periods.GET("/:id", h.AcademicPeriod.Get)
			periods.POST("", write(h.AcademicPeriod.Create)...)
			periods.PUT("/:id", write(h.AcademicPeriod.Update)...)
			periods.PUT("/:id/activate", write(h.AcademicPeriod.Activate)...)
			periods.DELETE("/:id", write(h.AcademicPeriod.Delete)...)
		}

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.List)
			courses.GET("/:id", h.Course.Get)
			courses.POST("", write(h.Course.Create)...)
		}

		// 排课模块
		schedules := v1.Group("/schedules")
		{
			schedules.GET("", h.Schedule.List)
			schedules.GET("/:id", h.Schedule.Get)
			schedules.POST("", write(h.Schedule.Create)...)
			schedules.PUT("/:id", write(h.Schedule.Update)...)
			schedules.DELETE("/:id", write(h.Schedule.Delete)...)
			// 预览与冲突检测不落库，所有已认证用户可用
			schedules.POST("/preview", h.Schedule.Preview)
			schedules.POST("/check-conflicts", h.Schedule.CheckConflicts)
		}

		// 选课模块
		enrollments := v1.Group("/enrollments")
		{
			enrollments.POST("", write(h.Enrollment.Enroll)...)
			enrollments.GET("/students/:id", h.Enrollment.ListByStudent)
			enrollments.DELETE("/:id", write(h.Enrollment.Drop)...)
		}

		// 日历视图
		calendar := v1.Group("/calendar")
		{
			calendar.GET("/day", h.Calendar.Day)
			calendar.GET("/month", h.Calendar.Month)
		}

		// 负荷报表
		reports := v1.Group("/reports")
		{
			reports.GET("/students/:id/load", h.Report.StudentLoad)
			reports.GET("/teachers/:id/load", h.Report.TeacherLoad)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/reports/students/:id/load.xlsx", h.Export.StudentLoad)
			export.GET("/reports/teachers/:id/load.xlsx", h.Export.TeacherLoad)
			export.GET("/calendar.ics", h.Export.Calendar)
		}
	}

	return r
}

// healthCheck 检查数据库与 Redis 连通性
func healthCheck(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok"}
		code := http.StatusOK

		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				status["status"], status["database"] = "degraded", "unreachable"
				code = http.StatusServiceUnavailable
			} else {
				status["database"] = "ok"
			}
		}

		// Redis 不可用时降级运行，不影响整体状态码
		if rdb != nil {
			if err := rdb.Ping(ctx); err != nil {
				status["redis"] = "unreachable"
			} else {
				status["redis"] = "ok"
			}
		}

		c.JSON(code, status)
	}
}
