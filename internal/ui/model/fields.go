package model

import (
	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// 从微件模型读取字段值的便捷函数。
// 字段名都来自微件自身的模式，读取错误按零值处理。

func fieldString(b *widget.Base, name string) string {
	v, _ := b.Get(name)
	s, _ := v.(string)
	return s
}

func fieldBool(b *widget.Base, name string) bool {
	v, _ := b.Get(name)
	on, _ := v.(bool)
	return on
}

func fieldFloat(b *widget.Base, name string) float64 {
	v, _ := b.Get(name)
	f, _ := v.(float64)
	return f
}

func fieldOptions(b *widget.Base, name string) []field.Option {
	v, _ := b.Get(name)
	opts, _ := v.([]field.Option)
	return opts
}

// fieldNullable 返回可空字符串字段的值，nil 映射为空字符串。
func fieldNullable(b *widget.Base, name string) string {
	v, _ := b.Get(name)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
