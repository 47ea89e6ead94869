package host

import (
	"testing"

	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/stretchr/testify/require"
)

// hostSchema 返回宿主测试用的字段模式。
func hostSchema() field.Schema {
	return field.Schema{
		{Name: "label", Kind: field.KindString, Default: "标签"},
		{Name: "value", Kind: field.KindNullableString},
		{Name: "loading", Kind: field.KindBool, Volatile: true},
	}
}

// TestMemoryHost_PendingBatch 测试写入先入批次、SaveChanges 才可见
func TestMemoryHost_PendingBatch(t *testing.T) {
	t.Parallel()

	h := NewMemoryHost(hostSchema())

	require.NoError(t, h.Set("label", "新标签"))
	v, err := h.Get("label")
	require.NoError(t, err)
	require.Equal(t, "标签", v)

	require.NoError(t, h.SaveChanges())
	v, err = h.Get("label")
	require.NoError(t, err)
	require.Equal(t, "新标签", v)
}

// TestMemoryHost_ChangeEvents 测试提交时按字段派发变更事件，同字段多次写入只派发一次
func TestMemoryHost_ChangeEvents(t *testing.T) {
	t.Parallel()

	h := NewMemoryHost(hostSchema())

	type ev struct{ old, new any }
	var events []ev
	handle, err := h.On(ChangeEvent("label"), func(old, new any) {
		events = append(events, ev{old, new})
	})
	require.NoError(t, err)

	require.NoError(t, h.Set("label", "一"))
	require.NoError(t, h.Set("label", "二"))
	require.NoError(t, h.SaveChanges())

	require.Equal(t, []ev{{"标签", "二"}}, events)

	// Off 之后不再收到事件；重复 Off 幂等
	h.Off(ChangeEvent("label"), handle)
	h.Off(ChangeEvent("label"), handle)
	require.NoError(t, h.Set("label", "三"))
	require.NoError(t, h.SaveChanges())
	require.Len(t, events, 1)
}

// TestMemoryHost_EqualValueNoEvent 测试值相等的提交不派发事件
func TestMemoryHost_EqualValueNoEvent(t *testing.T) {
	t.Parallel()

	h := NewMemoryHost(hostSchema())

	fired := 0
	_, err := h.On(ChangeEvent("label"), func(old, new any) { fired++ })
	require.NoError(t, err)

	require.NoError(t, h.Set("label", "标签"))
	require.NoError(t, h.SaveChanges())
	require.Zero(t, fired)

	// 易变字段总是派发
	volatileFired := 0
	_, err = h.On(ChangeEvent("loading"), func(old, new any) { volatileFired++ })
	require.NoError(t, err)
	require.NoError(t, h.Set("loading", false))
	require.NoError(t, h.SaveChanges())
	require.Equal(t, 1, volatileFired)
}

// TestMemoryHost_UnknownEvent 测试未知字段的事件注册报错
func TestMemoryHost_UnknownEvent(t *testing.T) {
	t.Parallel()

	h := NewMemoryHost(hostSchema())

	_, err := h.On(ChangeEvent("missing"), func(old, new any) {})
	var uerr *field.UnknownFieldError
	require.ErrorAs(t, err, &uerr)

	_, err = h.On("not-a-change-event", func(old, new any) {})
	require.Error(t, err)
}

// TestAdapter_ModelSemantics 测试适配器以 field.Model 的语义包装宿主
func TestAdapter_ModelSemantics(t *testing.T) {
	t.Parallel()

	h := NewMemoryHost(hostSchema())
	a := NewAdapter(h, hostSchema())

	// 本地校验在写入宿主之前拒绝类型错误
	err := a.Set("label", 42)
	var verr *field.InvalidValueError
	require.ErrorAs(t, err, &verr)

	var got []any
	sub, err := a.Subscribe("label", func(old, new any) error {
		got = append(got, new)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, a.Set("label", "经适配器"))
	require.NoError(t, a.SaveChanges())
	require.Equal(t, []any{"经适配器"}, got)

	v, err := a.Get("label")
	require.NoError(t, err)
	require.Equal(t, "经适配器", v)

	// 取消订阅幂等
	a.Unsubscribe(sub)
	a.Unsubscribe(sub)
	a.Unsubscribe(field.Subscription{})
	require.NoError(t, a.Set("label", "取消后"))
	require.NoError(t, a.SaveChanges())
	require.Len(t, got, 1)
}
