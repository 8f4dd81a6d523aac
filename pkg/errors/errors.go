/*
Package errors 应用层错误

AppError 携带对外错误码；FromDomainError 按 errors.Is 将领域哨兵错误映射为错误码，
HTTP 状态码由 api/response 决定。
*/
package errors

import (
	"context"
	"errors"
	"fmt"

	"ordering/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeAlreadyRetired   ErrorCode = "ALREADY_RETIRED"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeConcurrentModify ErrorCode = "CONCURRENT_MODIFICATION"
	CodeTooManyRequest   ErrorCode = "TOO_MANY_REQUESTS"
	CodeTimeout          ErrorCode = "TIMEOUT"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	IDs     []string  `json:"ids,omitempty"` // 违规的实体标识（批量校验时为全部）
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// domainMappings 顺序即优先级
var domainMappings = []struct {
	sentinel error
	code     ErrorCode
}{
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrAlreadyRetired, CodeAlreadyRetired},
	{shared.ErrUnavailable, CodeUnavailable},
	{shared.ErrConcurrentModification, CodeConcurrentModify},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrInvalidInput, CodeValidation},
}

// FromDomainError 将领域错误映射为应用错误，未知错误映射为 INTERNAL_ERROR
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Wrap(err, CodeTimeout, "request timed out or was cancelled")
	}

	for _, m := range domainMappings {
		if errors.Is(err, m.sentinel) {
			return &AppError{
				Code:    m.code,
				Message: err.Error(),
				IDs:     shared.IDsOf(err),
				Err:     err,
			}
		}
	}

	return Wrap(err, CodeInternal, err.Error())
}
