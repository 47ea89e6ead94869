package widget

import (
	"context"

	"github.com/purpose168/evo-widgets-cn/internal/bind"
	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// Unselected 是选项列表头部的"未选择"占位项。
var Unselected = field.Option{Label: "请选择…", Value: nil}

// DropdownSchema 返回下拉选择器的字段模式。
// loading 为易变字段：每次刷新开始/结束都要通知，即使值未变。
func DropdownSchema() field.Schema {
	return field.Schema{
		{Name: "label", Kind: field.KindString},
		{Name: "options", Kind: field.KindOptions, Default: []field.Option{Unselected}},
		{Name: "value", Kind: field.KindNullableString},
		{Name: "disabled", Kind: field.KindBool, Default: true},
		{Name: "loading", Kind: field.KindBool, Volatile: true},
	}
}

// OptionSource 提供下拉的候选选项（通常由 Evo 服务协作者实现）。
type OptionSource interface {
	Options(ctx context.Context) ([]field.Option, error)
}

// OptionSourceFunc 是函数式 [OptionSource] 适配器。
type OptionSourceFunc func(ctx context.Context) ([]field.Option, error)

// Options 实现 [OptionSource] 接口。
func (f OptionSourceFunc) Options(ctx context.Context) ([]field.Option, error) {
	return f(ctx)
}

// Prefs 是选择持久化协作者。核心不落盘，由外部实现决定存储位置。
type Prefs interface {
	// Get 按键读取持久化的选择，不存在时 ok 为 false。
	Get(key string) (value string, ok bool)
	// Set 持久化选择。
	Set(key, value string) error
}

// Dropdown 是带远端选项来源与选择持久化的下拉选择器微件。
//
// 交互约束：loading 或 disabled 期间用户的选择事件在控制器层被拒绝；
// 程序化写入（刷新期间的恢复/自动选择）不受闸门限制。
type Dropdown struct {
	*Base

	source   OptionSource
	prefs    Prefs
	onChange []func(value any)
	binding  *bind.Binding
}

// NewDropdown 创建下拉选择器。source 提供选项；prefs 可为 nil（不持久化）。
func NewDropdown(name, label string, source OptionSource, prefs Prefs, opts ...Option) (*Dropdown, error) {
	d := &Dropdown{
		Base:   newBase(name, DropdownSchema(), opts...),
		source: source,
		prefs:  prefs,
	}
	if err := d.Set("label", label); err != nil {
		return nil, err
	}

	b, err := d.Controller().BindDiscrete("value", bind.ControlFunc(d.valueChanged),
		bind.WithNullSentinel(), bind.WithGuards("loading", "disabled"))
	if err != nil {
		return nil, err
	}
	d.binding = b
	return d, nil
}

// OnChange 追加一个选择变更回调（级联边用它触发下游重算）。
// 回调收到模型侧的值：字符串或 nil，按注册顺序调用。
func (d *Dropdown) OnChange(fn func(value any)) {
	d.onChange = append(d.onChange, fn)
}

// Select 处理一次用户选择。空字符串表示选中占位项（模型写入 nil）。
// loading/disabled 闸门关闭时事件被忽略。
func (d *Dropdown) Select(value string) {
	d.binding.Input(value)
}

// Value 返回当前选择：字符串或 nil。
func (d *Dropdown) Value() any {
	v, _ := d.Get("value")
	return v
}

// Options 返回当前选项列表（含占位项）。
func (d *Dropdown) Options() []field.Option {
	v, _ := d.Get("options")
	opts, _ := v.([]field.Option)
	return opts
}

// valueChanged 是 value 字段的 from-model 投影：持久化非空选择并触发回调。
func (d *Dropdown) valueChanged(v any) {
	if s, ok := v.(string); ok && s != "" && d.prefs != nil {
		_ = d.prefs.Set(d.Name(), s)
	}
	model := v
	if s, ok := v.(string); ok && s == "" {
		model = nil
	}
	for _, fn := range d.onChange {
		fn(model)
	}
}

// Refresh 从来源重新拉取选项。
//
// 刷新期间 loading 与 disabled 同时置位；拉取成功后选项列表为
// 占位项加远端选项。选择规则：恰有一个真实选项且无持久化记录时
// 自动选中它；否则持久化的选择仍在列表中时恢复之；其余情况清空
// 选择。没有真实选项时保持 disabled。
func (d *Dropdown) Refresh(ctx context.Context) error {
	if err := d.Set("loading", true); err != nil {
		return err
	}
	if err := d.Set("disabled", true); err != nil {
		return err
	}
	defer func() { _ = d.Set("loading", false) }()

	fetched, err := d.source.Options(ctx)
	if err != nil {
		// 拉取失败：保持 disabled，选项不变
		return err
	}

	opts := make([]field.Option, 0, len(fetched)+1)
	opts = append(opts, Unselected)
	opts = append(opts, fetched...)
	if err := d.Set("options", opts); err != nil {
		return err
	}

	persisted, havePref := "", false
	if d.prefs != nil {
		persisted, havePref = d.prefs.Get(d.Name())
	}

	switch {
	case len(fetched) == 1 && !havePref:
		err = d.Set("value", fetched[0].Value)
	case havePref && field.SelectOption(fetched, persisted) >= 0:
		err = d.Set("value", persisted)
	default:
		err = d.Set("value", nil)
	}
	if err != nil {
		return err
	}

	return d.Set("disabled", len(fetched) == 0)
}
