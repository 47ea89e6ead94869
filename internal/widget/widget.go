// Package widget 实现微件目录：在响应式字段模型与绑定控制器之上，
// 提供生命周期管理、按字段的渲染函数，以及具体微件
// （反馈条、下拉选择器、级联选择器、对象搜索、服务管理器）。
package widget

import (
	"errors"
	"sync"
	"time"

	"github.com/purpose168/evo-widgets-cn/internal/bind"
	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// State 表示微件的生命周期阶段。
type State int

const (
	// Uninitialized 已构造，尚未挂载。
	Uninitialized State = iota
	// Mounted 已挂载：订阅已安装，每个字段的初始渲染已各执行一次。
	Mounted
	// Disposed 已销毁。终态，销毁幂等。
	Disposed
)

// String 返回阶段的可读名称。
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Mounted:
		return "mounted"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

var (
	// ErrMounted 表示在已挂载的微件上执行了仅限挂载前的操作。
	ErrMounted = errors.New("微件已挂载")
	// ErrDisposed 表示在已销毁的微件上执行了操作。
	ErrDisposed = errors.New("微件已销毁")
)

// RenderFunc 是按字段的渲染函数：把字段当前值投影到该字段对应的
// 呈现元素上。实现必须只更新自己的元素，并保证幂等
// （同一值渲染两次不产生可见差异）。
type RenderFunc func(v any)

// Option 配置微件的模型与绑定控制器。
type Option func(*config)

type config struct {
	model field.Model
	saver bind.Saver
	delay time.Duration
}

// WithModel 替换微件默认的内存字段存储（例如换成宿主适配器）。
func WithModel(m field.Model) Option {
	return func(c *config) { c.model = m }
}

// WithSaver 设置提交后刷新宿主状态的协作者。
func WithSaver(s bind.Saver) Option {
	return func(c *config) { c.saver = s }
}

// WithDebounce 覆盖文本绑定的去抖间隔。
func WithDebounce(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// Base 承载微件的公共骨架：字段模型、绑定控制器、渲染函数注册表
// 与生命周期状态机。具体微件内嵌 Base 并在其上声明绑定。
type Base struct {
	name  string
	model field.Model
	ctrl  *bind.Controller

	mu      sync.Mutex
	state   State
	renders []renderEntry
	subs    []field.Subscription
}

type renderEntry struct {
	field string
	fn    RenderFunc
}

// newBase 构造微件骨架。未指定模型时按模式创建独立的内存存储。
func newBase(name string, schema field.Schema, opts ...Option) *Base {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	model := cfg.model
	if model == nil {
		model = field.NewStore(schema)
	}

	var copts []bind.ControllerOption
	if cfg.saver != nil {
		copts = append(copts, bind.WithSaver(cfg.saver))
	}
	if cfg.delay > 0 {
		copts = append(copts, bind.WithDebounce(cfg.delay))
	}

	return &Base{
		name:  name,
		model: model,
		ctrl:  bind.NewController(model, copts...),
	}
}

// Name 返回微件实例名（用于偏好持久化与日志）。
func (b *Base) Name() string { return b.name }

// Model 返回微件的字段模型。
func (b *Base) Model() field.Model { return b.model }

// Controller 返回微件的绑定控制器。
func (b *Base) Controller() *bind.Controller { return b.ctrl }

// State 返回当前生命周期阶段。
func (b *Base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Get 读取字段当前值。
func (b *Base) Get(name string) (any, error) {
	return b.model.Get(name)
}

// Set 写入字段值。
func (b *Base) Set(name string, v any) error {
	return b.model.Set(name, v)
}

// OnRender 注册字段的渲染函数。只能在挂载前调用；
// 挂载时按注册顺序安装订阅并执行初始渲染。
func (b *Base) OnRender(name string, fn RenderFunc) error {
	if _, ok := b.schemaSpec(name); !ok {
		return &field.UnknownFieldError{Field: name}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case Mounted:
		return ErrMounted
	case Disposed:
		return ErrDisposed
	}
	b.renders = append(b.renders, renderEntry{field: name, fn: fn})
	return nil
}

// Fields 返回模型的全部字段名（模型不暴露模式时为 nil）。
func (b *Base) Fields() []string {
	type schemaer interface{ Schema() field.Schema }
	if s, ok := b.model.(schemaer); ok {
		return s.Schema().Names()
	}
	return nil
}

func (b *Base) schemaSpec(name string) (field.Spec, bool) {
	type schemaer interface{ Schema() field.Schema }
	if s, ok := b.model.(schemaer); ok {
		return s.Schema().Spec(name)
	}
	// 模型不暴露模式时由 Get 校验字段存在性
	if _, err := b.model.Get(name); err != nil {
		return field.Spec{}, false
	}
	return field.Spec{Name: name}, true
}

// Mount 进入挂载态。仅可进入一次：按注册顺序为每个渲染函数安装
// 字段订阅，随后对每个字段恰好执行一次初始渲染。
func (b *Base) Mount() error {
	b.mu.Lock()
	switch b.state {
	case Mounted:
		b.mu.Unlock()
		return ErrMounted
	case Disposed:
		b.mu.Unlock()
		return ErrDisposed
	}
	b.state = Mounted
	renders := make([]renderEntry, len(b.renders))
	copy(renders, b.renders)
	b.mu.Unlock()

	for _, r := range renders {
		fn := r.fn
		sub, err := b.model.Subscribe(r.field, func(old, new any) error {
			fn(new)
			return nil
		})
		if err != nil {
			return err
		}
		b.mu.Lock()
		b.subs = append(b.subs, sub)
		b.mu.Unlock()
	}

	// 初始渲染：每个字段恰好一次，使用挂载时的当前值
	for _, r := range renders {
		v, err := b.model.Get(r.field)
		if err != nil {
			return err
		}
		r.fn(v)
	}
	return nil
}

// Dispose 进入终态：取消绑定控制器（含待去抖的定时器）并移除
// 全部渲染订阅。幂等：重复销毁是空操作，不会二次拆除，
// 销毁后订阅者不再被调用。
func (b *Base) Dispose() {
	b.mu.Lock()
	if b.state == Disposed {
		b.mu.Unlock()
		return
	}
	b.state = Disposed
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	b.ctrl.Dispose()
	for _, sub := range subs {
		b.model.Unsubscribe(sub)
	}
}
