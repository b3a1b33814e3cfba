package domain

import (
	"errors"
	"strings"
)

// 服务层错误分类，由 handler 统一映射为 HTTP 状态 + 信封
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrIsbnImmutable      = errors.New("ISBN cannot be changed")
)

// ValidationError 聚合全部字段错误，而不是只报第一条
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages, "; ") }

// ConflictError 唯一约束冲突（email / isbn）
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(msg string) error { return &ConflictError{Msg: msg} }

// IsDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
