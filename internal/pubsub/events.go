package pubsub

import "context"

// 事件类型常量定义
const (
	// FieldChangedEvent 微件字段值发生变更
	FieldChangedEvent EventType = "field_changed"
	// WidgetMountedEvent 微件进入挂载态
	WidgetMountedEvent EventType = "widget_mounted"
	// WidgetDisposedEvent 微件被销毁
	WidgetDisposedEvent EventType = "widget_disposed"
)

// Subscriber 订阅者接口，通过通道接收事件通知
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}

type (
	// EventType 事件类型标识符
	EventType string

	// Event 表示一次事件及其载荷
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher 发布者接口
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)

// FieldChange 是字段变更事件的载荷。
type FieldChange struct {
	// Widget 微件实例名。
	Widget string
	// Field 字段名。
	Field string
	// Old 与 New 是变更前后的值。
	Old any
	New any
}
