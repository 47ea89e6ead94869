// Package styles 定义 TUI 的配色与文本样式。
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

// 图标常量定义
const (
	CheckIcon string = "✓" // 勾选图标
	ErrorIcon string = "✗" // 错误图标

	ArrowRightIcon string = "→" // 右箭头图标

	RadioOn  string = "◉" // 单选按钮选中状态
	RadioOff string = "○" // 单选按钮未选中状态

	SectionSeparator string = "─" // 节分隔线
)

// Styles 定义了UI的所有样式
type Styles struct {
	Background color.Color

	// 可复用文本样式
	Base   lipgloss.Style // 基础文本样式
	Title  lipgloss.Style // 标题样式
	Muted  lipgloss.Style // 弱化文本样式
	Subtle lipgloss.Style // 细微文本样式

	// 字段样式
	Label    lipgloss.Style // 字段标签样式
	Value    lipgloss.Style // 字段值样式
	Selected lipgloss.Style // 选中项样式
	Disabled lipgloss.Style // 禁用项样式

	// 状态样式
	Error   lipgloss.Style // 错误文本样式
	Info    lipgloss.Style // 信息文本样式
	Success lipgloss.Style // 成功文本样式

	// 控件样式
	Button         lipgloss.Style // 按钮样式
	ButtonFocused  lipgloss.Style // 聚焦按钮样式
	ButtonDisabled lipgloss.Style // 禁用按钮样式

	// 布局样式
	Pane      lipgloss.Style // 面板样式
	StatusBar lipgloss.Style // 状态栏样式
	Help        lipgloss.Style // 帮助栏样式
	Tab         lipgloss.Style // 标签页样式
	TabActive   lipgloss.Style // 激活标签页样式
}

// DefaultStyles 返回默认样式集
func DefaultStyles() Styles {
	var (
		primary   = charmtone.Charple
		secondary = charmtone.Dolly

		bgBase   = charmtone.Pepper
		bgSubtle = charmtone.Charcoal

		fgBase   = charmtone.Ash
		fgMuted  = charmtone.Squid
		fgSubtle = charmtone.Oyster

		borderFocus = charmtone.Charple

		errColor = charmtone.Sriracha
		info     = charmtone.Malibu
		success  = charmtone.Bok
	)

	base := lipgloss.NewStyle().Foreground(fgBase)

	var s Styles
	s.Background = lipgloss.Color(bgBase.Hex())
	s.Base = base
	s.Title = base.Foreground(primary).Bold(true)
	s.Muted = base.Foreground(fgMuted)
	s.Subtle = base.Foreground(fgSubtle)

	s.Label = base.Foreground(secondary)
	s.Value = base
	s.Selected = base.Foreground(charmtone.Salt).Background(primary)
	s.Disabled = base.Foreground(fgSubtle)

	s.Error = base.Foreground(errColor)
	s.Info = base.Foreground(info)
	s.Success = base.Foreground(success)

	s.Button = base.Padding(0, 2).Background(bgSubtle)
	s.ButtonFocused = base.Padding(0, 2).Foreground(charmtone.Salt).Background(primary)
	s.ButtonDisabled = base.Padding(0, 2).Foreground(fgSubtle).Background(bgSubtle)

	s.Pane = base.Border(lipgloss.RoundedBorder()).BorderForeground(borderFocus).Padding(0, 1)
	s.StatusBar = base.Foreground(fgMuted).Background(bgSubtle).Padding(0, 1)
	s.Help = base.Foreground(fgSubtle)
	s.Tab = base.Foreground(fgMuted).Padding(0, 1)
	s.TabActive = base.Foreground(primary).Bold(true).Padding(0, 1)

	return s
}
