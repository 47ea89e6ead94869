// Package field 实现微件的响应式字段模型：一组具名、带类型、可订阅的值槽。
// 模式（Schema）在微件构造时固定，运行期不可增删字段；字段值的读写与
// 订阅通知都发生在同一个逻辑执行上下文中（UI 事件循环）。
package field

import (
	"fmt"
	"reflect"
)

// Kind 表示字段值的类型。
type Kind int

const (
	// KindString 字符串字段。
	KindString Kind = iota
	// KindFloat 浮点数字段。
	KindFloat
	// KindBool 布尔字段。
	KindBool
	// KindNullableString 可空字符串字段，nil 表示"未选择"。
	KindNullableString
	// KindOptions 有序的（显示标签，底层值）选项列表字段。
	KindOptions
)

// String 返回类型的可读名称。
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNullableString:
		return "string|null"
	case KindOptions:
		return "options"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Validate 检查 v 是否符合该类型。不符合时返回错误，调用方应保持原值不变。
func (k Kind) Validate(v any) error {
	switch k {
	case KindString:
		if _, ok := v.(string); ok {
			return nil
		}
	case KindFloat:
		if _, ok := v.(float64); ok {
			return nil
		}
	case KindBool:
		if _, ok := v.(bool); ok {
			return nil
		}
	case KindNullableString:
		if v == nil {
			return nil
		}
		if _, ok := v.(string); ok {
			return nil
		}
	case KindOptions:
		if _, ok := v.([]Option); ok {
			return nil
		}
	}
	return fmt.Errorf("期望 %s，实际为 %T", k, v)
}

// Zero 返回该类型的零值。
func (k Kind) Zero() any {
	switch k {
	case KindString:
		return ""
	case KindFloat:
		return 0.0
	case KindBool:
		return false
	case KindNullableString:
		return nil
	case KindOptions:
		return []Option{}
	default:
		return nil
	}
}

// Option 表示选项列表中的一项：显示标签加底层值。
// Value 为 nil 表示"无选择"占位项。列表不保证值的唯一性，
// 按值查找时采用首个匹配。
type Option struct {
	Label string
	Value any
}

// Spec 描述模式中的一个字段。
type Spec struct {
	// Name 字段名，在同一模式内唯一。
	Name string
	// Kind 字段类型。
	Kind Kind
	// Default 初始值；为 nil 且类型不可空时使用类型零值。
	Default any
	// Volatile 易变字段：即使新旧值相等也通知订阅者（例如 loading 标志）。
	Volatile bool
}

// Schema 是固定的有序字段集合。
type Schema []Spec

// Spec 按名称查找字段描述。
func (s Schema) Spec(name string) (Spec, bool) {
	for _, sp := range s {
		if sp.Name == name {
			return sp, true
		}
	}
	return Spec{}, false
}

// Names 返回模式中全部字段名，保持声明顺序。
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, sp := range s {
		names[i] = sp.Name
	}
	return names
}

// Equal 按值比较两个字段值（而非按引用）。选项列表逐项比较。
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// SelectOption 在选项列表中按值相等查找当前值对应的索引，首个匹配生效。
// 无匹配时返回 -1：控件保持自身默认显示，这是文档化的边界情况而非错误。
func SelectOption(opts []Option, value any) int {
	for i, o := range opts {
		if Equal(o.Value, value) {
			return i
		}
	}
	return -1
}
