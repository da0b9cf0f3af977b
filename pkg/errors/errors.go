package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：version 不匹配时 Repository 的 Update/Drop 返回，
// Handler 统一映射为 409（业务码 10009）
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
