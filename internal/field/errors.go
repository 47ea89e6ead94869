package field

import (
	"errors"
	"fmt"
)

// UnknownFieldError 表示访问了模式之外的字段。这是编程错误，不可恢复。
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "未知字段: " + e.Field
}

// InvalidValueError 表示写入的值与字段声明的类型不符。写入被拒绝，原值保持不变。
type InvalidValueError struct {
	Field string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("字段 %s 的值无效: %v", e.Field, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// ListenerError 表示一个或多个订阅者在通知过程中出错。
// 单个订阅者出错不会中断其余订阅者，也不影响写入本身；
// 所有错误在通知结束后统一收集上报，绝不静默丢弃。
type ListenerError struct {
	Field string
	Errs  []error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("字段 %s 的 %d 个订阅者通知失败: %v", e.Field, len(e.Errs), errors.Join(e.Errs...))
}

func (e *ListenerError) Unwrap() []error {
	return e.Errs
}
