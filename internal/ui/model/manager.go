package model

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/sahilm/fuzzy"

	"github.com/purpose168/evo-widgets-cn/internal/event"
	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/purpose168/evo-widgets-cn/internal/ui/common"
	"github.com/purpose168/evo-widgets-cn/internal/ui/styles"
	"github.com/purpose168/evo-widgets-cn/internal/ui/util"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// servicesRefreshedMsg 表示一次服务刷新完成。
type servicesRefreshedMsg struct{}

// managerFocus 是服务管理面板内的焦点元素。
type managerFocus int

const (
	focusButton managerFocus = iota
	focusOrg
	focusHub
	focusWS
)

// managerPane 是服务管理面板：登录/刷新按钮与三级级联选择器。
type managerPane struct {
	com     *common.Common
	keyMap  keyMap
	spinner spinner.Model

	focus     managerFocus
	filtering bool
	filter    textinput.Model
}

// newManagerPane 创建服务管理面板。
func newManagerPane(com *common.Common, keys keyMap) *managerPane {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "输入以过滤选项"
	ti.SetWidth(32)

	return &managerPane{
		com:     com,
		keyMap:  keys,
		spinner: sp,
		filter:  ti,
	}
}

// Init 启动面板的后台命令。
func (p *managerPane) Init() tea.Cmd {
	return p.spinner.Tick
}

// Update 处理面板消息。
func (p *managerPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *managerPane) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if p.filtering {
		return p.handleFilterKey(msg)
	}

	keys := p.keyMap
	switch {
	case key.Matches(msg, keys.Up):
		p.focus = ordered.Clamp(p.focus-1, focusButton, focusWS)
	case key.Matches(msg, keys.Down):
		p.focus = ordered.Clamp(p.focus+1, focusButton, focusWS)
	case key.Matches(msg, keys.Left):
		p.moveSelection(-1)
	case key.Matches(msg, keys.Right):
		p.moveSelection(1)
	case key.Matches(msg, keys.Enter):
		if p.focus == focusButton {
			return p.refreshCmd()
		}
	case key.Matches(msg, keys.Filter):
		if p.focus != focusButton {
			p.filtering = true
			p.filter.SetValue("")
			return p.filter.Focus()
		}
	}
	return nil
}

// handleFilterKey 处理过滤模式下的按键：回车选中最佳匹配，esc 取消。
func (p *managerPane) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		p.filtering = false
		p.filter.Blur()
		p.selectFiltered()
		return nil
	case "esc":
		p.filtering = false
		p.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	return cmd
}

// selectFiltered 在聚焦的选择器中选中过滤文本的最佳模糊匹配。
func (p *managerPane) selectFiltered() {
	dd := p.focused()
	if dd == nil {
		return
	}
	opts := dd.Options()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	matches := fuzzy.Find(p.filter.Value(), labels)
	if len(matches) == 0 {
		return
	}
	if v, ok := opts[matches[0].Index].Value.(string); ok {
		dd.Select(v)
	} else {
		dd.Select("")
	}
}

// moveSelection 在聚焦的选择器中前后移动选中项。
func (p *managerPane) moveSelection(delta int) {
	dd := p.focused()
	if dd == nil {
		return
	}
	opts := dd.Options()
	if len(opts) == 0 {
		return
	}
	idx := field.SelectOption(opts, dd.Value())
	if idx < 0 {
		idx = 0
	}
	idx = ordered.Clamp(idx+delta, 0, len(opts)-1)
	if v, ok := opts[idx].Value.(string); ok {
		dd.Select(v)
	} else {
		dd.Select("")
	}
}

// focused 返回当前聚焦的选择器，按钮聚焦时为 nil。
func (p *managerPane) focused() *widget.Dropdown {
	mgr := p.com.App.Manager
	switch p.focus {
	case focusOrg:
		return mgr.Org
	case focusHub:
		return mgr.Hub
	case focusWS:
		return mgr.Workspace
	default:
		return nil
	}
}

// refreshCmd 在后台执行服务刷新。
func (p *managerPane) refreshCmd() tea.Cmd {
	mgr := p.com.App.Manager
	return func() tea.Msg {
		if err := mgr.Clicked(); err != nil {
			return util.NewErrorMsg(err)
		}
		event.ServicesRefreshed()
		return servicesRefreshedMsg{}
	}
}

// View 渲染面板内容。
func (p *managerPane) View(width int) string {
	s := p.com.Styles
	mgr := p.com.App.Manager

	var rows []string

	if fieldBool(mgr.Base, "show_prompt") {
		rows = append(rows, s.Muted.Render(fieldString(mgr.Base, "prompt_text")), "")
	}

	rows = append(rows, p.buttonView(), "")
	rows = append(rows,
		p.dropdownView(focusOrg, mgr.Org),
		p.dropdownView(focusHub, mgr.Hub),
		p.dropdownView(focusWS, mgr.Workspace),
	)

	if p.filtering {
		rows = append(rows, "", p.filter.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p *managerPane) buttonView() string {
	s := p.com.Styles
	mgr := p.com.App.Manager

	label := fieldString(mgr.Base, "button_text")
	if fieldBool(mgr.Base, "main_loading") {
		label = p.spinner.View() + " " + label
	}

	style := s.Button
	switch {
	case fieldBool(mgr.Base, "button_disabled"):
		style = s.ButtonDisabled
	case p.focus == focusButton:
		style = s.ButtonFocused
	}
	return style.Render(label)
}

func (p *managerPane) dropdownView(focus managerFocus, dd *widget.Dropdown) string {
	s := p.com.Styles

	label := fieldString(dd.Base, "label")
	opts := dd.Options()
	disabled := fieldBool(dd.Base, "disabled")
	loading := fieldBool(dd.Base, "loading")

	current := widget.Unselected.Label
	if idx := field.SelectOption(opts, dd.Value()); idx >= 0 {
		current = opts[idx].Label
	}

	var marker string
	switch {
	case loading:
		marker = p.spinner.View()
	case dd.Value() != nil:
		marker = styles.RadioOn
	default:
		marker = styles.RadioOff
	}

	valueStyle := s.Value
	if disabled {
		valueStyle = s.Disabled
	}
	line := fmt.Sprintf("%s %s %s", marker, s.Label.Render(label+":"), valueStyle.Render(current))
	if !disabled && len(opts) > 1 {
		line += s.Subtle.Render(fmt.Sprintf("  (%d 个选项)", len(opts)-1))
	}

	if p.focus == focus && !p.filtering {
		return s.Selected.Render(styles.ArrowRightIcon) + " " + line
	}
	return strings.Repeat(" ", 2) + line
}
