// Package model 实现 TUI 的根模型与各面板。
// 面板不持有微件状态的副本：渲染时直接读取微件模型，
// 字段变更事件仅作为重绘触发器。
package model

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/purpose168/evo-widgets-cn/internal/pubsub"
	"github.com/purpose168/evo-widgets-cn/internal/ui/common"
	"github.com/purpose168/evo-widgets-cn/internal/ui/util"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// paneID 标识当前激活的面板。
type paneID int

const (
	paneManager paneID = iota
	paneSearch
)

var paneTitles = map[paneID]string{
	paneManager: "服务",
	paneSearch:  "搜索",
}

// mountedMsg 表示微件挂载完成。
type mountedMsg struct{}

// UI 是应用的根 tea.Model。
type UI struct {
	com    *common.Common
	keyMap keyMap
	help   help.Model

	manager *managerPane
	search  *searchPane
	status  *statusBar

	active   paneID
	showHelp bool
	width    int
	height   int
}

// New 创建根 UI 模型。
func New(com *common.Common) *UI {
	keys := defaultKeyMap()
	return &UI{
		com:     com,
		keyMap:  keys,
		help:    help.New(),
		manager: newManagerPane(com, keys),
		search:  newSearchPane(com, keys),
		status:  newStatusBar(com),
	}
}

// Init 挂载微件并启动各面板。
func (u *UI) Init() tea.Cmd {
	mount := func() tea.Msg {
		if err := u.com.App.Mount(); err != nil {
			return util.NewErrorMsg(err)
		}
		return mountedMsg{}
	}
	return tea.Batch(mount, u.manager.Init(), u.search.Init())
}

// Update 处理消息。
func (u *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.width = msg.Width
		u.height = msg.Height
		u.help.SetWidth(msg.Width)
		return u, nil

	case pubsub.Event[pubsub.FieldChange]:
		// 微件状态在渲染时直接读取，事件本身只触发重绘
		return u, nil

	case mountedMsg:
		return u, nil

	case servicesRefreshedMsg:
		return u, util.ReportSuccess("Evo 服务已刷新")

	case util.InfoMsg, util.ClearStatusMsg:
		return u, u.status.Update(msg)

	case spinner.TickMsg:
		// 两个面板各持有自己的加载指示器
		return u, tea.Batch(u.manager.Update(msg), u.search.Update(msg))

	case tea.KeyPressMsg:
		if cmd, handled := u.handleGlobalKey(msg); handled {
			return u, cmd
		}
	}

	return u, u.activePane().Update(msg)
}

// handleGlobalKey 处理全局按键，返回是否已消费。
func (u *UI) handleGlobalKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	// 过滤模式下除 quit 外全部交给面板
	if u.active == paneManager && u.manager.filtering {
		if key.Matches(msg, u.keyMap.Quit) && msg.String() == "ctrl+c" {
			return tea.Quit, true
		}
		return nil, false
	}
	// 搜索输入聚焦时字母键都是普通字符，只保留 ctrl+c 与 tab
	if u.active == paneSearch && u.search.input.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return tea.Quit, true
		case "tab":
			u.active = paneManager
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, u.keyMap.Quit):
		return tea.Quit, true
	case key.Matches(msg, u.keyMap.Tab):
		if u.active == paneManager {
			u.active = paneSearch
		} else {
			u.active = paneManager
		}
		return nil, true
	case key.Matches(msg, u.keyMap.Help):
		u.showHelp = !u.showHelp
		u.help.ShowAll = u.showHelp
		return nil, true
	}
	return nil, false
}

// activePane 返回当前激活的面板。
func (u *UI) activePane() interface {
	Update(tea.Msg) tea.Cmd
	View(int) string
} {
	if u.active == paneSearch {
		return u.search
	}
	return u.manager
}

// View 渲染整个界面。
func (u *UI) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.BackgroundColor = u.com.Styles.Background
	v.WindowTitle = "evowidgets"

	if u.width == 0 {
		v.Content = "加载中…"
		return v
	}

	s := u.com.Styles
	innerWidth := max(u.width-4, 20)

	var tabs []string
	for _, id := range []paneID{paneManager, paneSearch} {
		style := s.Tab
		if id == u.active {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(paneTitles[id]))
	}

	pane := s.Pane.Width(u.width - 2).Render(u.activePane().View(innerWidth))

	sections := []string{
		s.Title.Render("Evo 微件"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		pane,
	}

	if bar := u.feedbackView(innerWidth); bar != "" {
		sections = append(sections, bar)
	}

	sections = append(sections, u.status.View(u.width))
	sections = append(sections, s.Help.Render(u.help.View(u.keyMap)))

	v.Content = lipgloss.JoinVertical(lipgloss.Left, sections...)
	return v
}

// feedbackView 渲染导出进度条，空闲时不占用空间。
func (u *UI) feedbackView(width int) string {
	s := u.com.Styles
	fb := u.com.App.Feedback

	p := fieldFloat(fb.Base, "progress")
	message := fieldString(fb.Base, "message")
	if p == 0 && message == "" {
		return ""
	}

	barWidth := max(min(width-20, 30), 10)
	filled := int(p * float64(barWidth))
	bar := s.Success.Render(repeatRune('█', filled)) + s.Subtle.Render(repeatRune('░', barWidth-filled))

	line := s.Label.Render(fieldString(fb.Base, "label")+" ") + bar + " " + s.Value.Render(widget.FormatProgress(p))
	if message != "" {
		line += "  " + s.Muted.Render(message)
	}
	return line
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
