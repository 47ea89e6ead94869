package field

import (
	"fmt"
	"log/slog"
	"sync"
)

// Listener 字段变更监听器，收到变更前后的值。
// 返回的错误被逐个收集，不会中断其余监听器。
type Listener func(old, new any) error

// Subscription 是订阅句柄，用于取消订阅。零值表示空句柄。
type Subscription struct {
	field string
	id    uint64
}

// NewSubscription 构造订阅句柄，供 [Model] 的其它实现使用。
func NewSubscription(field string, id uint64) Subscription {
	return Subscription{field: field, id: id}
}

// Field 返回句柄对应的字段名。
func (s Subscription) Field() string { return s.field }

// ID 返回句柄编号；0 表示空句柄。
func (s Subscription) ID() uint64 { return s.id }

// Model 是字段模型的最小抽象：读、写、订阅。
// 任何宿主运行时只要实现该接口即可替换默认的 [Store]，
// 绑定与渲染逻辑无需改动。
type Model interface {
	// Get 返回字段当前值；字段不在模式中时返回 [UnknownFieldError]。
	Get(name string) (any, error)
	// Set 校验并写入字段值，随后同步通知该字段的全部订阅者。
	Set(name string, v any) error
	// Subscribe 注册字段变更监听器，返回可用于取消的句柄。
	Subscribe(name string, fn Listener) (Subscription, error)
	// Unsubscribe 取消订阅。幂等：重复取消是空操作而非错误。
	Unsubscribe(sub Subscription)
}

// Store 是 [Model] 的观察者模式实现，由单个微件实例独占。
//
// 通知语义：值先写入再通知；订阅者按注册顺序依次同步调用；
// 新旧值按值相等时跳过通知，易变（Volatile）字段除外。
type Store struct {
	schema Schema

	mu     sync.Mutex
	values map[string]any
	subs   map[string][]*subEntry
	nextID uint64
}

type subEntry struct {
	id uint64
	fn Listener
}

var _ Model = (*Store)(nil)

// NewStore 按给定模式创建字段存储并填充初始值。
func NewStore(schema Schema) *Store {
	values := make(map[string]any, len(schema))
	for _, sp := range schema {
		v := sp.Default
		if v == nil && sp.Kind != KindNullableString {
			v = sp.Kind.Zero()
		}
		values[sp.Name] = v
	}
	return &Store{
		schema: schema,
		values: values,
		subs:   make(map[string][]*subEntry, len(schema)),
	}
}

// Schema 返回存储的字段模式。
func (s *Store) Schema() Schema {
	return s.schema
}

// Get 实现 [Model] 接口。
func (s *Store) Get(name string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schema.Spec(name); !ok {
		return nil, &UnknownFieldError{Field: name}
	}
	return s.values[name], nil
}

// Set 实现 [Model] 接口。
//
// 类型不符时返回 [InvalidValueError]，原值保持不变。写入成功后按注册顺序
// 同步通知订阅者；某个订阅者出错（或 panic）不会阻止后续订阅者运行，
// 错误收集为 [ListenerError] 在通知结束后返回——此时写入本身已经生效。
func (s *Store) Set(name string, v any) error {
	s.mu.Lock()

	sp, ok := s.schema.Spec(name)
	if !ok {
		s.mu.Unlock()
		return &UnknownFieldError{Field: name}
	}
	if err := sp.Kind.Validate(v); err != nil {
		s.mu.Unlock()
		return &InvalidValueError{Field: name, Err: err}
	}

	old := s.values[name]
	if !sp.Volatile && Equal(old, v) {
		s.mu.Unlock()
		return nil
	}
	s.values[name] = v

	// 在锁外通知，允许订阅者重入读写模型。
	entries := make([]*subEntry, len(s.subs[name]))
	copy(entries, s.subs[name])
	s.mu.Unlock()

	var errs []error
	for _, e := range entries {
		if err := invokeListener(e.fn, old, v); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		lerr := &ListenerError{Field: name, Errs: errs}
		slog.Error("字段订阅者通知失败", "field", name, "error", lerr)
		return lerr
	}
	return nil
}

// invokeListener 调用单个监听器并把 panic 转换为错误，隔离故障订阅者。
func invokeListener(fn Listener, old, new any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("订阅者 panic: %v", r)
		}
	}()
	return fn(old, new)
}

// Subscribe 实现 [Model] 接口。同一字段的多个订阅相互独立。
func (s *Store) Subscribe(name string, fn Listener) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schema.Spec(name); !ok {
		return Subscription{}, &UnknownFieldError{Field: name}
	}
	s.nextID++
	s.subs[name] = append(s.subs[name], &subEntry{id: s.nextID, fn: fn})
	return Subscription{field: name, id: s.nextID}, nil
}

// Unsubscribe 实现 [Model] 接口。
func (s *Store) Unsubscribe(sub Subscription) {
	if sub.id == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.subs[sub.field]
	for i, e := range entries {
		if e.id == sub.id {
			s.subs[sub.field] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}
