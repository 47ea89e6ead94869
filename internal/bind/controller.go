package bind

import (
	"log/slog"
	"sync"
	"time"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// Saver 在一批模型写入后把变更刷新到宿主的持久状态
// （对应宿主同步协议中的 save_changes 操作）。
type Saver interface {
	SaveChanges() error
}

// Controller 拥有一个微件的全部绑定，并把它们作为整体拆除。
type Controller struct {
	model field.Model
	saver Saver
	delay time.Duration

	mu       sync.Mutex
	bindings []*Binding
	disposed bool
}

// ControllerOption 配置控制器。
type ControllerOption func(*Controller)

// WithSaver 设置提交后刷新宿主的协作者。
func WithSaver(s Saver) ControllerOption {
	return func(c *Controller) { c.saver = s }
}

// WithDebounce 设置文本绑定的默认去抖间隔。
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) { c.delay = d }
}

// NewController 创建绑定控制器。
func NewController(model field.Model, opts ...ControllerOption) *Controller {
	c := &Controller{model: model, delay: DefaultDebounce}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model 返回控制器操作的字段模型。
func (c *Controller) Model() field.Model {
	return c.model
}

// BindText 建立去抖文本绑定：每次击键缓冲最新值并重置定时器，
// 静默期结束（或控件失焦/提交）才写入模型。
func (c *Controller) BindText(name string, control Control, opts ...BindOption) (*Binding, error) {
	b := &Binding{ctrl: c, field: name, control: control, direction: TwoWay}
	b.debouncer = NewDebouncer(c.delay, b.commit)
	for _, opt := range opts {
		opt(b)
	}
	return c.install(b)
}

// BindDiscrete 建立离散控件绑定（选择/开关/滑块）：变更立即写入模型，不去抖。
func (c *Controller) BindDiscrete(name string, control Control, opts ...BindOption) (*Binding, error) {
	b := &Binding{ctrl: c, field: name, control: control, direction: TwoWay}
	for _, opt := range opts {
		opt(b)
	}
	return c.install(b)
}

// install 安装 from-model 方向的订阅并登记绑定。
func (c *Controller) install(b *Binding) (*Binding, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return nil, ErrDisposed
	}

	if b.direction != ToModel && b.control != nil {
		sub, err := c.model.Subscribe(b.field, func(old, new any) error {
			b.control.ApplyValue(b.fromModel(new))
			return nil
		})
		if err != nil {
			return nil, err
		}
		b.sub = sub
		b.subbed = true
	}

	c.bindings = append(c.bindings, b)
	return b, nil
}

// commit 写入模型并刷新宿主。校验错误在此浮出；订阅者错误已由模型收集记录。
func (c *Controller) commit(name string, v any) {
	if err := c.model.Set(name, v); err != nil {
		var lerr *field.ListenerError
		if !asListenerError(err, &lerr) {
			slog.Error("绑定提交失败", "field", name, "error", err)
			return
		}
		// 订阅者错误不影响写入，继续刷新宿主
	}
	if c.saver != nil {
		if err := c.saver.SaveChanges(); err != nil {
			slog.Error("刷新宿主状态失败", "field", name, "error", err)
		}
	}
}

// Dispose 原子地拆除全部绑定：取消待去抖的定时器并移除订阅。
// 幂等：重复销毁是空操作，不会二次执行拆除逻辑。
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	bindings := c.bindings
	c.bindings = nil
	c.mu.Unlock()

	for _, b := range bindings {
		if b.debouncer != nil {
			b.debouncer.Close()
		}
		if b.subbed {
			c.model.Unsubscribe(b.sub)
		}
	}
}

// Disposed 返回控制器是否已销毁。
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

func (c *Controller) isDisposed() bool {
	return c.Disposed()
}

// disposedOrGuarded 判断输入是否应被拒绝：控制器已销毁，或任一闸门字段为 true。
func (c *Controller) disposedOrGuarded(b *Binding) bool {
	if c.isDisposed() {
		return true
	}
	for _, g := range b.guards {
		v, err := c.model.Get(g)
		if err != nil {
			continue
		}
		if on, ok := v.(bool); ok && on {
			return true
		}
	}
	return false
}
