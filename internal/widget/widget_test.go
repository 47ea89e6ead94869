package widget

import (
	"testing"

	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/stretchr/testify/require"
)

// TestBase_MountOnce 测试挂载只进入一次：订阅安装、初始渲染各执行一次
func TestBase_MountOnce(t *testing.T) {
	t.Parallel()

	f := NewFeedback("fb")
	var labels []any
	require.NoError(t, f.OnRender("label", func(v any) { labels = append(labels, v) }))

	require.NoError(t, f.Mount())
	require.Equal(t, Mounted, f.State())
	// 初始渲染恰好一次
	require.Equal(t, []any{""}, labels)

	// 重复挂载被拒绝
	require.ErrorIs(t, f.Mount(), ErrMounted)
	require.Equal(t, []any{""}, labels)

	// 挂载后注册渲染函数被拒绝
	require.ErrorIs(t, f.OnRender("message", func(any) {}), ErrMounted)

	// 字段变更触发渲染
	require.NoError(t, f.SetLabel("导出进度"))
	require.Equal(t, []any{"", "导出进度"}, labels)
}

// TestBase_RenderFieldScoped 测试渲染函数只响应自己字段的变更
func TestBase_RenderFieldScoped(t *testing.T) {
	t.Parallel()

	f := NewFeedback("fb")
	var labels, messages []any
	require.NoError(t, f.OnRender("label", func(v any) { labels = append(labels, v) }))
	require.NoError(t, f.OnRender("message", func(v any) { messages = append(messages, v) }))
	require.NoError(t, f.Mount())

	require.NoError(t, f.Set("message", "完成"))
	require.Equal(t, []any{""}, labels)
	require.Equal(t, []any{"", "完成"}, messages)
}

// TestBase_DisposeIdempotent 测试销毁终态：幂等且不再触发渲染
func TestBase_DisposeIdempotent(t *testing.T) {
	t.Parallel()

	f := NewFeedback("fb")
	var labels []any
	require.NoError(t, f.OnRender("label", func(v any) { labels = append(labels, v) }))
	require.NoError(t, f.Mount())

	f.Dispose()
	require.Equal(t, Disposed, f.State())

	// 销毁后字段写入仍生效，但不再触发渲染
	require.NoError(t, f.SetLabel("销毁之后"))
	require.Equal(t, []any{""}, labels)

	// 幂等销毁与终态约束
	f.Dispose()
	require.Equal(t, Disposed, f.State())
	require.ErrorIs(t, f.Mount(), ErrDisposed)
	require.ErrorIs(t, f.OnRender("label", func(any) {}), ErrDisposed)
}

// TestBase_UnknownRenderField 测试注册未知字段的渲染函数报错
func TestBase_UnknownRenderField(t *testing.T) {
	t.Parallel()

	f := NewFeedback("fb")
	var uerr *field.UnknownFieldError
	require.ErrorAs(t, f.OnRender("missing", func(any) {}), &uerr)
}
