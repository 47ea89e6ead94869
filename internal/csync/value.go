package csync

import (
	"reflect"
	"sync"
)

// Value 是单个值的互斥封装，用于在 tea.Cmd goroutine 与
// 服务协作者之间共享小块状态（如当前的组织/中心/工作区选择）。
//
// 切片用 [Slice]，映射用 [Map]；指针会让封装失去意义，直接拒绝。
type Value[T any] struct {
	v  T
	mu sync.RWMutex
}

// NewValue 用初始值创建封装。t 为指针、切片或映射类型时 panic，
// 这三类的读写共享底层数据，必须走各自的专用封装。
func NewValue[T any](t T) *Value[T] {
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer:
		panic("csync.Value 不支持指针类型")
	case reflect.Slice:
		panic("csync.Value 不支持切片类型；请使用 csync.Slice")
	case reflect.Map:
		panic("csync.Value 不支持映射类型；请使用 csync.Map")
	}
	return &Value[T]{v: t}
}

// Get 读取当前值。
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set 覆盖当前值。
func (v *Value[T]) Set(t T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.v = t
}
