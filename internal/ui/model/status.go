package model

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/purpose168/evo-widgets-cn/internal/ui/common"
	"github.com/purpose168/evo-widgets-cn/internal/ui/styles"
	"github.com/purpose168/evo-widgets-cn/internal/ui/util"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// statusTTL 是瞬时信息的默认停留时长。
const statusTTL = 4 * time.Second

// statusBar 渲染底部状态栏：当前服务选择、搜索状态与瞬时信息。
type statusBar struct {
	com  *common.Common
	info *util.InfoMsg
}

func newStatusBar(com *common.Common) *statusBar {
	return &statusBar{com: com}
}

// Update 处理瞬时信息的显示与过期。
func (s *statusBar) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case util.InfoMsg:
		s.info = &msg
		ttl := msg.TTL
		if ttl == 0 {
			ttl = statusTTL
		}
		return tea.Tick(ttl, func(time.Time) tea.Msg {
			return util.ClearStatusMsg{}
		})
	case util.ClearStatusMsg:
		s.info = nil
	}
	return nil
}

// View 渲染状态栏，超出宽度时截断。
func (s *statusBar) View(width int) string {
	st := s.com.Styles

	if s.info != nil {
		style := st.Info
		icon := ""
		switch s.info.Type {
		case util.InfoTypeError:
			style = st.Error
			icon = styles.ErrorIcon + " "
		case util.InfoTypeSuccess:
			style = st.Success
			icon = styles.CheckIcon + " "
		case util.InfoTypeWarn:
			style = st.Error
		}
		return st.StatusBar.Width(width).Render(style.Render(ansi.Truncate(icon+s.info.Msg, width-2, "…")))
	}

	mgr := s.com.App.Manager
	content := s.selectionView(selectedLabel(mgr.Org), selectedLabel(mgr.Hub), selectedLabel(mgr.Workspace))

	if status := fieldString(s.com.App.Search.Base, "status_text"); status != "" {
		content += st.Subtle.Render(" "+styles.SectionSeparator+" ") + st.Muted.Render(status)
	}
	if s.com.Config().Debug {
		content += st.Subtle.Render(" [调试]")
	}

	return st.StatusBar.Width(width).Render(ansi.Truncate(content, width-2, "…"))
}

// selectedLabel 返回选择器当前选中项的显示名，未选中时为空。
func selectedLabel(dd *widget.Dropdown) string {
	opts := dd.Options()
	if idx := field.SelectOption(opts, dd.Value()); idx >= 0 {
		if opts[idx].Value != nil {
			return opts[idx].Label
		}
	}
	return ""
}

// selectionView 渲染 组织 → 中心 → 工作区 的当前选择。
func (s *statusBar) selectionView(org, hub, ws string) string {
	st := s.com.Styles
	part := func(label, v string) string {
		if v == "" {
			return st.Subtle.Render(label + ": 未选择")
		}
		return st.Label.Render(label+": ") + st.Value.Render(v)
	}
	sep := st.Subtle.Render(" " + styles.ArrowRightIcon + " ")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		part("组织", org), sep,
		part("中心", hub), sep,
		part("工作区", ws),
	)
}
