package bind

import (
	"time"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// Direction 指定绑定的同步方向。
type Direction int

const (
	// ToModel 仅用户输入写入模型。
	ToModel Direction = iota
	// FromModel 仅字段变更投影到控件。
	FromModel
	// TwoWay 双向同步。
	TwoWay
)

// Control 是被绑定控件的呈现端。ApplyValue 把字段当前值投影到控件上
// （from-model 方向），实现必须只更新该字段对应的呈现元素。
type Control interface {
	ApplyValue(v any)
}

// ControlFunc 是函数式 [Control] 适配器。
type ControlFunc func(v any)

// ApplyValue 实现 [Control] 接口。
func (f ControlFunc) ApplyValue(v any) { f(v) }

// Binding 把一个控件关联到一个字段。由 [Controller] 创建并持有，
// 不单独拆除——销毁随控制器整体进行。
type Binding struct {
	ctrl      *Controller
	field     string
	control   Control
	direction Direction
	guards    []string
	nullable  bool // 空字符串 ↔ nil 哨兵转换
	debouncer *Debouncer
	sub       field.Subscription
	subbed    bool
}

// BindOption 配置单个绑定。
type BindOption func(*Binding)

// WithGuards 声明伴随的闸门字段。任一闸门为 true 时，
// 用户输入在控制器层被拒绝（事件被忽略，而非仅视觉抑制）。
func WithGuards(names ...string) BindOption {
	return func(b *Binding) {
		b.guards = append(b.guards, names...)
	}
}

// WithNullSentinel 启用空值哨兵转换：控件的空表示（空字符串）映射为
// 模型的 nil，反向亦然。映射是显式且对称的。
func WithNullSentinel() BindOption {
	return func(b *Binding) {
		b.nullable = true
	}
}

// WithDirection 设置绑定方向，默认为 [TwoWay]。
func WithDirection(d Direction) BindOption {
	return func(b *Binding) {
		b.direction = d
	}
}

// WithDebounceDelay 覆盖该绑定的去抖间隔。
func WithDebounceDelay(d time.Duration) BindOption {
	return func(b *Binding) {
		if b.debouncer != nil {
			b.debouncer.delay = d
		}
	}
}

// Input 处理一次用户输入。文本绑定经过去抖，离散绑定立即提交。
// 控制器已销毁或闸门关闭时输入被忽略。
func (b *Binding) Input(v any) {
	if b.ctrl.disposedOrGuarded(b) {
		return
	}
	v = b.toModel(v)
	if b.debouncer != nil {
		b.debouncer.Input(v)
		return
	}
	b.commit(v)
}

// Flush 立即提交待去抖的值（控件失焦或显式提交时调用）。
func (b *Binding) Flush() {
	if b.debouncer != nil {
		b.debouncer.Flush()
	}
}

// Field 返回绑定的字段名。
func (b *Binding) Field() string {
	return b.field
}

// commit 把归一化后的值写入模型并刷新宿主。
func (b *Binding) commit(v any) {
	if b.ctrl.isDisposed() {
		// 销毁后到期的去抖定时器：按设计静默忽略
		return
	}
	b.ctrl.commit(b.field, v)
}

// toModel 应用空值哨兵转换（控件 → 模型方向）。
func (b *Binding) toModel(v any) any {
	if !b.nullable {
		return v
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}

// fromModel 应用空值哨兵转换（模型 → 控件方向）。
func (b *Binding) fromModel(v any) any {
	if b.nullable && v == nil {
		return ""
	}
	return v
}
