package model

import (
	"charm.land/bubbles/v2/key"
)

// keyMap 定义全局按键绑定
type keyMap struct {
	Tab    key.Binding // 切换面板
	Up     key.Binding // 上移
	Down   key.Binding // 下移
	Left   key.Binding // 上一个选项
	Right  key.Binding // 下一个选项
	Enter  key.Binding // 确认/点击
	Filter key.Binding // 过滤选项
	Viewer key.Binding // 打开三维查看器
	Portal key.Binding // 打开门户页
	Copy   key.Binding // 复制对象引用
	Help   key.Binding // 帮助
	Quit   key.Binding // 退出
}

// defaultKeyMap 返回默认按键绑定
func defaultKeyMap() keyMap {
	return keyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "切换面板"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "上移"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "下移"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "上一个选项"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "下一个选项"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "确认"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "过滤选项"),
		),
		Viewer: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Evo 查看器"),
		),
		Portal: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Evo 门户"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "复制引用"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "帮助"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出"),
		),
	}
}

// ShortHelp 实现 help.KeyMap 接口
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Enter, k.Help, k.Quit}
}

// FullHelp 实现 help.KeyMap 接口
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.Filter, k.Viewer, k.Portal, k.Copy},
		{k.Help, k.Quit},
	}
}
