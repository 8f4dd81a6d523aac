/*
Package shared - 领域层共享错误定义

设计原则:
1. 领域层定义哨兵错误(sentinel errors)，用于 errors.Is() 类型安全判断
2. DomainError 在创建时捕获堆栈，但延迟格式化（按需打印）
3. 领域错误不包含 HTTP 状态码等传输层概念
4. 涉及多个实体的错误（批量校验）在 IDs 中携带全部违规标识
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// 哨兵错误 (Sentinel Errors)
// ============================================================================

var (
	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrConflict 与当前状态冲突（重复名称、终态订单、重复成员）
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput 无效输入（参数校验失败）
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyRetired 对已退役实体再次退役
	ErrAlreadyRetired = errors.New("already retired")

	// ErrUnavailable 引用了已退役的实体
	ErrUnavailable = errors.New("unavailable")

	// ErrConcurrentModification 乐观锁版本冲突
	ErrConcurrentModification = errors.New("concurrent modification")
)

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err 底层哨兵错误，用于 errors.Is() 判断
	Err error

	// Reason 可选：子领域更具体的哨兵（如 order.ErrOrderCancelled）
	Reason error

	// Entity 发生错误的实体名称（如 "order", "product"）
	Entity string

	// Message 人类可读的错误描述
	Message string

	// Field 可选：发生错误的字段名（用于校验错误）
	Field string

	// IDs 可选：所有违规的实体标识
	IDs []string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap 同时暴露 Err 与 Reason，两者都可以被 errors.Is() 命中
func (e *DomainError) Unwrap() []error {
	if e.Reason != nil {
		return []error{e.Err, e.Reason}
	}
	return []error{e.Err}
}

// Stack 按需格式化堆栈
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack 捕获当前调用栈
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧，过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

func describe(entity, what string, ids []string) string {
	if len(ids) == 0 {
		return entity + " " + what
	}
	if len(ids) == 1 {
		return fmt.Sprintf("%s %s %s", entity, ids[0], what)
	}
	return fmt.Sprintf("%s %s: [%s]", entity, what, strings.Join(ids, ", "))
}

// ============================================================================
// 领域错误构造函数
// ============================================================================

// NewNotFoundError 创建"未找到"领域错误，ids 为全部缺失的标识
func NewNotFoundError(entity string, ids ...string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		IDs:     ids,
		Message: describe(entity, "not found", ids),
		stack:   CaptureStack(3),
	}
}

// NewNotMemberError 成员关系不存在，如商品不在该分类下
func NewNotMemberError(entity, memberID, container, containerID string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		IDs:     []string{memberID},
		Message: fmt.Sprintf("%s %s is not in %s %s", entity, memberID, container, containerID),
		stack:   CaptureStack(3),
	}
}

// NewConflictError 创建"冲突"领域错误
func NewConflictError(entity, message string, ids ...string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		IDs:     ids,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewReasonedConflictError 带子领域哨兵的冲突错误
func NewReasonedConflictError(entity string, reason error, message string, ids ...string) error {
	return &DomainError{
		Err:     ErrConflict,
		Reason:  reason,
		Entity:  entity,
		IDs:     ids,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError 创建"校验失败"领域错误
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewAlreadyRetiredError 对已退役实体执行退役
func NewAlreadyRetiredError(entity, id string) error {
	return &DomainError{
		Err:     ErrAlreadyRetired,
		Entity:  entity,
		IDs:     []string{id},
		Message: describe(entity, "is already retired", []string{id}),
		stack:   CaptureStack(3),
	}
}

// NewUnavailableError 引用了已退役实体，ids 为全部退役的标识
func NewUnavailableError(entity string, ids ...string) error {
	return &DomainError{
		Err:     ErrUnavailable,
		Entity:  entity,
		IDs:     ids,
		Message: describe(entity, "is retired and unavailable", ids),
		stack:   CaptureStack(3),
	}
}

// NewConcurrentModificationError 乐观锁冲突
func NewConcurrentModificationError(entity, id string) error {
	return &DomainError{
		Err:     ErrConcurrentModification,
		Entity:  entity,
		IDs:     []string{id},
		Message: fmt.Sprintf("%s %s was modified concurrently", entity, id),
		stack:   CaptureStack(3),
	}
}

// IDsOf 提取领域错误携带的实体标识
func IDsOf(err error) []string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.IDs
	}
	return nil
}

// Stacker 可提供堆栈的错误接口，供 API 层统一提取堆栈
type Stacker interface {
	Stack() []string
}
