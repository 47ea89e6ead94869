package host

import (
	"sync"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// Adapter 把 [Host] 适配为 [field.Model]：每一次字段读写与订阅
// 最终都委托给宿主对象。微件侧持有 Adapter 后，本地存储与宿主
// 存储可以互换使用。
type Adapter struct {
	host   Host
	schema field.Schema

	mu   sync.Mutex
	subs map[uint64]adapterSub
	next uint64
}

type adapterSub struct {
	event  string
	handle uint64
}

var _ field.Model = (*Adapter)(nil)

// NewAdapter 为给定宿主创建模型适配器。模式用于本地校验，
// 使类型错误在到达宿主之前就被拒绝。
func NewAdapter(h Host, schema field.Schema) *Adapter {
	return &Adapter{
		host:   h,
		schema: schema,
		subs:   make(map[uint64]adapterSub),
	}
}

// Schema 返回适配器的字段模式。
func (a *Adapter) Schema() field.Schema {
	return a.schema
}

// Get 实现 [field.Model] 接口。
func (a *Adapter) Get(name string) (any, error) {
	if _, ok := a.schema.Spec(name); !ok {
		return nil, &field.UnknownFieldError{Field: name}
	}
	return a.host.Get(name)
}

// Set 实现 [field.Model] 接口。本地校验通过后写入宿主。
func (a *Adapter) Set(name string, v any) error {
	sp, ok := a.schema.Spec(name)
	if !ok {
		return &field.UnknownFieldError{Field: name}
	}
	if err := sp.Kind.Validate(v); err != nil {
		return &field.InvalidValueError{Field: name, Err: err}
	}
	return a.host.Set(name, v)
}

// Subscribe 实现 [field.Model] 接口，翻译为宿主的 "change:<字段>" 事件。
func (a *Adapter) Subscribe(name string, fn field.Listener) (field.Subscription, error) {
	if _, ok := a.schema.Spec(name); !ok {
		return field.Subscription{}, &field.UnknownFieldError{Field: name}
	}

	event := ChangeEvent(name)
	handle, err := a.host.On(event, func(old, new any) {
		// 宿主侧处理器不传播错误；订阅者错误由模型层的调用方收集
		_ = fn(old, new)
	})
	if err != nil {
		return field.Subscription{}, err
	}

	a.mu.Lock()
	a.next++
	id := a.next
	a.subs[id] = adapterSub{event: event, handle: handle}
	a.mu.Unlock()

	return field.NewSubscription(name, id), nil
}

// Unsubscribe 实现 [field.Model] 接口。幂等。
func (a *Adapter) Unsubscribe(sub field.Subscription) {
	id := sub.ID()
	if id == 0 {
		return
	}

	a.mu.Lock()
	entry, ok := a.subs[id]
	delete(a.subs, id)
	a.mu.Unlock()

	if ok {
		a.host.Off(entry.event, entry.handle)
	}
}

// SaveChanges 把一批写入刷新到宿主（实现 [bind.Saver]）。
func (a *Adapter) SaveChanges() error {
	return a.host.SaveChanges()
}
