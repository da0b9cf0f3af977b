package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EduOpsSolutions/EduOps-sub001/internal/service"
	pkgerrors "github.com/EduOpsSolutions/EduOps-sub001/pkg/errors"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/response"
	"github.com/EduOpsSolutions/EduOps-sub001/pkg/validation"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString("user_id")
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// bindJSON 绑定 JSON 请求体；失败时写入 400（含字段详情）或 413 并返回 false
func bindJSON(c *gin.Context, req interface{}) bool {
	return bindResult(c, c.ShouldBindJSON(req))
}

// bindQuery 绑定查询参数；失败时写入 400 并返回 false
func bindQuery(c *gin.Context, req interface{}) bool {
	return bindResult(c, c.ShouldBindQuery(req))
}

func bindResult(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return false
	}
	if fields := validation.FieldErrors(err); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", fields)
		return false
	}
	response.BadRequest(c, 10001, "参数校验失败")
	return false
}

// handleCommonError 处理跨模块共享的错误；已写入响应时返回 true
func handleCommonError(c *gin.Context, err error, conflictCode int) bool {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, conflictCode, conflict.Error(), conflict.Result)
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10009, pkgerrors.ErrOptimisticLock.Error(), nil)
	default:
		return false
	}
	return true
}
