package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// TestFieldHelpers 测试从微件模型读取各类字段的便捷函数
func TestFieldHelpers(t *testing.T) {
	t.Parallel()

	fb := widget.NewFeedback("fb")
	require.NoError(t, fb.Set("label", "导出"))
	require.NoError(t, fb.Set("progress", 0.5))

	require.Equal(t, "导出", fieldString(fb.Base, "label"))
	require.InDelta(t, 0.5, fieldFloat(fb.Base, "progress"), 1e-9)

	// 不存在的字段按零值处理
	require.Equal(t, "", fieldString(fb.Base, "missing"))
	require.False(t, fieldBool(fb.Base, "missing"))
}

// TestFieldHelpers_Dropdown 测试选项与可空字符串字段的读取
func TestFieldHelpers_Dropdown(t *testing.T) {
	t.Parallel()

	src := widget.OptionSourceFunc(func(context.Context) ([]field.Option, error) {
		return []field.Option{{Label: "甲", Value: "a"}}, nil
	})
	dd, err := widget.NewDropdown("dd", "选择", src, nil)
	require.NoError(t, err)

	// 初始只有占位选项，value 为 nil
	opts := fieldOptions(dd.Base, "options")
	require.Len(t, opts, 1)
	require.Equal(t, widget.Unselected.Label, opts[0].Label)
	require.Equal(t, "", fieldNullable(dd.Base, "value"))

	require.NoError(t, dd.Set("value", "a"))
	require.Equal(t, "a", fieldNullable(dd.Base, "value"))

	require.True(t, fieldBool(dd.Base, "disabled"))
}
