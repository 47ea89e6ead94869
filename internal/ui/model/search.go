package model

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/pkg/browser"

	"github.com/purpose168/evo-widgets-cn/internal/event"
	"github.com/purpose168/evo-widgets-cn/internal/evo"
	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/purpose168/evo-widgets-cn/internal/ui/common"
	"github.com/purpose168/evo-widgets-cn/internal/ui/styles"
	"github.com/purpose168/evo-widgets-cn/internal/ui/util"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// searchPane 是对象搜索面板：搜索输入、类型筛选、结果列表与元数据。
type searchPane struct {
	com     *common.Common
	keyMap  keyMap
	spinner spinner.Model
	input   textinput.Model
	meta    viewport.Model
}

// newSearchPane 创建对象搜索面板。
func newSearchPane(com *common.Common, keys keyMap) *searchPane {
	ti := textinput.New()
	ti.Prompt = "搜索: "
	ti.Placeholder = "按名称搜索对象"
	ti.SetWidth(40)

	vp := viewport.New()
	vp.SetWidth(60)
	vp.SetHeight(8)

	return &searchPane{
		com:     com,
		keyMap:  keys,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:   ti,
		meta:    vp,
	}
}

// Init 聚焦搜索输入并启动后台命令。
func (p *searchPane) Init() tea.Cmd {
	return tea.Batch(p.input.Focus(), p.spinner.Tick)
}

// Update 处理面板消息。
func (p *searchPane) Update(msg tea.Msg) tea.Cmd {
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

func (p *searchPane) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	search := p.com.App.Search
	keys := p.keyMap

	// 输入框聚焦时字母键都属于输入内容，只保留少量控制键
	if p.input.Focused() {
		switch msg.String() {
		case "esc":
			p.input.Blur()
			return nil
		case "up":
			p.moveSelection(-1)
			return nil
		case "down":
			p.moveSelection(1)
			return nil
		case "enter":
			return p.flushCmd()
		case "ctrl+t":
			p.cycleType()
			return nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		// 每次击键都经过去抖绑定
		search.SetSearchText(p.input.Value())
		return cmd
	}

	if msg.String() == "ctrl+t" {
		p.cycleType()
		return nil
	}

	switch {
	case key.Matches(msg, keys.Filter):
		return p.input.Focus()
	case key.Matches(msg, keys.Up):
		p.moveSelection(-1)
	case key.Matches(msg, keys.Down):
		p.moveSelection(1)
	case key.Matches(msg, keys.Enter):
		return p.flushCmd()
	case key.Matches(msg, keys.Viewer):
		return p.openLinkCmd("viewer")
	case key.Matches(msg, keys.Portal):
		return p.openLinkCmd("overview")
	case key.Matches(msg, keys.Copy):
		return p.copyReferenceCmd()
	}
	return nil
}

// flushCmd 立即提交待去抖的搜索文本。
func (p *searchPane) flushCmd() tea.Cmd {
	search := p.com.App.Search
	return func() tea.Msg {
		search.FlushSearch()
		event.SearchPerformed("结果数", len(search.Results()))
		return nil
	}
}

// moveSelection 在结果列表中上下移动选中项。
func (p *searchPane) moveSelection(delta int) {
	search := p.com.App.Search
	results := fieldOptions(search.Base, "result_options")
	if len(results) == 0 {
		return
	}
	idx := field.SelectOption(results, fieldNullable(search.Base, "selected_id"))
	if idx < 0 {
		idx = 0
	}
	idx = ordered.Clamp(idx+delta, 0, len(results)-1)
	if v, ok := results[idx].Value.(string); ok {
		search.SelectResult(v)
	}
}

// cycleType 轮换到下一个类型筛选项。
func (p *searchPane) cycleType() {
	search := p.com.App.Search
	types := fieldOptions(search.Base, "type_options")
	if len(types) == 0 {
		return
	}
	idx := field.SelectOption(types, typeValue(search))
	idx = (idx + 1) % len(types)
	if v, ok := types[idx].Value.(string); ok {
		search.SelectType(v)
	} else {
		search.SelectType("")
	}
}

func typeValue(search *widget.Search) any {
	v, _ := search.Get("object_type")
	return v
}

// reference 返回当前选中对象的引用地址。
func (p *searchPane) reference() (string, error) {
	id := fieldNullable(p.com.App.Search.Base, "selected_id")
	if id == "" {
		return "", fmt.Errorf("尚未选中对象")
	}
	return p.com.App.Services.ObjectReference(id)
}

// openLinkCmd 在浏览器中打开选中对象的 Evo 链接。
func (p *searchPane) openLinkCmd(view string) tea.Cmd {
	return func() tea.Msg {
		ref, err := p.reference()
		if err != nil {
			return util.NewErrorMsg(err)
		}
		var url string
		if view == "viewer" {
			url, err = evo.ViewerURL(ref)
		} else {
			url, err = evo.PortalURL(ref)
		}
		if err != nil {
			return util.NewErrorMsg(err)
		}
		if err := browser.OpenURL(url); err != nil {
			return util.NewErrorMsg(err)
		}
		event.LinkOpened(view)
		return util.NewInfoMsg("已在浏览器中打开 " + url)
	}
}

// copyReferenceCmd 把选中对象的引用地址复制到剪贴板。
func (p *searchPane) copyReferenceCmd() tea.Cmd {
	return func() tea.Msg {
		ref, err := p.reference()
		if err != nil {
			return util.NewErrorMsg(err)
		}
		// OSC52 与系统剪贴板各尝试一次，覆盖远程与本地终端
		if err := clipboard.WriteAll(ref); err != nil {
			return tea.SetClipboard(ref)()
		}
		return util.NewInfoMsg("对象引用已复制")
	}
}

// View 渲染面板内容。
func (p *searchPane) View(width int) string {
	s := p.com.Styles
	search := p.com.App.Search

	var rows []string
	rows = append(rows, p.input.View())

	// 类型筛选行
	typeLabel := widget.AllTypes.Label
	types := fieldOptions(search.Base, "type_options")
	if idx := field.SelectOption(types, typeValue(search)); idx >= 0 {
		typeLabel = types[idx].Label
	}
	rows = append(rows, s.Label.Render("类型: ")+s.Value.Render(typeLabel)+s.Subtle.Render("  (ctrl+t 切换)"))
	rows = append(rows, "")

	// 结果列表
	rows = append(rows, p.resultRows()...)

	// 状态行
	status := fieldString(search.Base, "status_text")
	if fieldBool(search.Base, "loading") {
		status = p.spinner.View() + " 搜索中"
	}
	if status != "" {
		rows = append(rows, "", s.Muted.Render(status))
	}

	// 元数据块
	if meta := fieldString(search.Base, "metadata_text"); meta != "" {
		p.meta.SetContent(meta)
		rows = append(rows, "", s.Subtle.Render(strings.Repeat(styles.SectionSeparator, min(width, 40))), p.meta.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// resultRows 渲染结果列表，选中项高亮。
func (p *searchPane) resultRows() []string {
	s := p.com.Styles
	search := p.com.App.Search

	results := fieldOptions(search.Base, "result_options")
	selected := fieldNullable(search.Base, "selected_id")

	rows := make([]string, 0, len(results))
	for _, o := range results {
		line := o.Label
		if v, ok := o.Value.(string); ok && v == selected {
			rows = append(rows, s.Selected.Render(styles.ArrowRightIcon+" "+line))
			continue
		}
		rows = append(rows, "  "+s.Value.Render(line))
	}
	return rows
}
