package util

import (
	"errors"
	"fmt"
)

// 错误分类，HandleError 依此映射 HTTP 状态码
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
)

var (
	ErrTestNotFound         = fmt.Errorf("test %w", ErrNotFound)
	ErrQuestionNotFound     = fmt.Errorf("question %w", ErrNotFound)
	ErrAttemptNotFound      = fmt.Errorf("attempt %w", ErrNotFound)
	ErrMistakeNotFound      = fmt.Errorf("mistake %w", ErrNotFound)
	ErrAttemptNotInProgress = fmt.Errorf("attempt is not in progress: %w", ErrInvalidState)
	ErrAttemptNotSubmitted  = fmt.Errorf("attempt has not been submitted: %w", ErrInvalidState)
)

// ValidationError 标明出错的输入字段
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
