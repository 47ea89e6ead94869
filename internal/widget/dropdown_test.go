package widget

import (
	"context"
	"sync"
	"testing"

	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/stretchr/testify/require"
)

// staticSource 返回固定选项列表。
func staticSource(opts ...field.Option) OptionSource {
	return OptionSourceFunc(func(context.Context) ([]field.Option, error) {
		return opts, nil
	})
}

// memPrefs 是内存偏好实现。
type memPrefs struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemPrefs() *memPrefs {
	return &memPrefs{m: make(map[string]string)}
}

func (p *memPrefs) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.m[key]
	return v, ok
}

func (p *memPrefs) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = value
	return nil
}

// TestDropdown_SelectByValue 测试按底层值选择选项
func TestDropdown_SelectByValue(t *testing.T) {
	t.Parallel()

	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "Option 1", Value: "val1"},
		field.Option{Label: "Option 2", Value: "val2"},
	), nil)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	d.Select("val1")
	require.Equal(t, "val1", d.Value())

	// 首个匹配生效
	idx := field.SelectOption(d.Options(), "val1")
	require.Equal(t, 1, idx) // 占位项在 0 位
	require.Equal(t, "Option 1", d.Options()[idx].Label)
}

// TestDropdown_AbsentValueNoSelection 测试模型值不在选项中时无选中项（非错误）
func TestDropdown_AbsentValueNoSelection(t *testing.T) {
	t.Parallel()

	opts := []field.Option{
		Unselected,
		{Label: "Option 1", Value: "val1"},
		{Label: "Option 2", Value: "val2"},
	}
	require.Equal(t, -1, field.SelectOption(opts, "val9"))
}

// TestDropdown_LoadingIgnoresSelection 测试加载期间选择事件被忽略
func TestDropdown_LoadingIgnoresSelection(t *testing.T) {
	t.Parallel()

	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "Option 1", Value: "val1"},
		field.Option{Label: "Option 2", Value: "val2"},
	), nil)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	require.NoError(t, d.Set("loading", true))
	d.Select("val1")
	require.Nil(t, d.Value())

	require.NoError(t, d.Set("loading", false))
	d.Select("val1")
	require.Equal(t, "val1", d.Value())
}

// TestDropdown_RefreshAutoSelectSingle 测试恰有一个选项且无持久化记录时自动选中
func TestDropdown_RefreshAutoSelectSingle(t *testing.T) {
	t.Parallel()

	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "唯一", Value: "only"},
	), nil)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	require.Equal(t, "only", d.Value())
	v, _ := d.Get("disabled")
	require.Equal(t, false, v)
}

// TestDropdown_RefreshRestoresPersisted 测试持久化的选择在刷新后恢复
func TestDropdown_RefreshRestoresPersisted(t *testing.T) {
	t.Parallel()

	prefs := newMemPrefs()
	require.NoError(t, prefs.Set("dd", "val2"))

	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "Option 1", Value: "val1"},
		field.Option{Label: "Option 2", Value: "val2"},
	), prefs)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	require.Equal(t, "val2", d.Value())
}

// TestDropdown_RefreshPersistedGone 测试持久化的选择已不在列表时清空选择
func TestDropdown_RefreshPersistedGone(t *testing.T) {
	t.Parallel()

	prefs := newMemPrefs()
	require.NoError(t, prefs.Set("dd", "val9"))

	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "Option 1", Value: "val1"},
	), prefs)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	require.Nil(t, d.Value())
}

// TestDropdown_RefreshEmptyStaysDisabled 测试没有真实选项时保持禁用
func TestDropdown_RefreshEmptyStaysDisabled(t *testing.T) {
	t.Parallel()

	d, err := NewDropdown("dd", "选项", staticSource(), nil)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	v, _ := d.Get("disabled")
	require.Equal(t, true, v)
	require.Nil(t, d.Value())
	// 选项列表只剩占位项
	require.Equal(t, []field.Option{Unselected}, d.Options())
}

// TestDropdown_SelectPersists 测试用户选择写入偏好
func TestDropdown_SelectPersists(t *testing.T) {
	t.Parallel()

	prefs := newMemPrefs()
	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "Option 1", Value: "val1"},
		field.Option{Label: "Option 2", Value: "val2"},
	), prefs)
	require.NoError(t, err)
	require.NoError(t, d.Refresh(context.Background()))

	d.Select("val1")
	saved, ok := prefs.Get("dd")
	require.True(t, ok)
	require.Equal(t, "val1", saved)
}

// TestDropdown_OnChangeCallbacks 测试变更回调按注册顺序收到模型侧的值
func TestDropdown_OnChangeCallbacks(t *testing.T) {
	t.Parallel()

	d, err := NewDropdown("dd", "选项", staticSource(
		field.Option{Label: "Option 1", Value: "val1"},
		field.Option{Label: "Option 2", Value: "val2"},
	), nil)
	require.NoError(t, err)

	var got []any
	d.OnChange(func(v any) { got = append(got, v) })
	require.NoError(t, d.Refresh(context.Background()))

	d.Select("val1")
	d.Select("")
	require.Equal(t, []any{"val1", nil}, got)
}
