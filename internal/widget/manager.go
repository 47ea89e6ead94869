package widget

import (
	"context"
	"fmt"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// 服务管理器按钮的两种标签：首次连接前与之后。
const (
	signInLabel  = "登录并连接 Evo"
	refreshLabel = "刷新 Evo 服务"
)

// ManagerSchema 返回服务管理器微件的扁平字段模式。
// 三个级联选择器的选项/选择/加载状态镜像为 org_*/hub_*/ws_* 字段，
// 宿主一侧只需观察单个模型。
func ManagerSchema() field.Schema {
	return field.Schema{
		{Name: "button_text", Kind: field.KindString, Default: signInLabel},
		{Name: "button_disabled", Kind: field.KindBool},
		{Name: "button_clicked", Kind: field.KindBool, Volatile: true},
		{Name: "main_loading", Kind: field.KindBool, Volatile: true},
		{Name: "prompt_text", Kind: field.KindString, Default: "点击按钮连接 Evo 服务"},
		{Name: "show_prompt", Kind: field.KindBool, Default: true},
		{Name: "org_options", Kind: field.KindOptions, Default: []field.Option{Unselected}},
		{Name: "org_value", Kind: field.KindNullableString},
		{Name: "org_loading", Kind: field.KindBool, Volatile: true},
		{Name: "hub_options", Kind: field.KindOptions, Default: []field.Option{Unselected}},
		{Name: "hub_value", Kind: field.KindNullableString},
		{Name: "hub_loading", Kind: field.KindBool, Volatile: true},
		{Name: "ws_options", Kind: field.KindOptions, Default: []field.Option{Unselected}},
		{Name: "ws_value", Kind: field.KindNullableString},
		{Name: "ws_loading", Kind: field.KindBool, Volatile: true},
	}
}

// Services 是服务管理器的 Evo 协作者。
type Services interface {
	// Organizations 返回可用组织的（名称, id）选项。
	Organizations(ctx context.Context) ([]field.Option, error)
	// Hubs 返回组织下可用中心的选项。
	Hubs(ctx context.Context, org string) ([]field.Option, error)
	// Workspaces 返回中心下可用工作区的选项。
	Workspaces(ctx context.Context, org, hub string) ([]field.Option, error)
	// SetSelection 接收当前的组织/中心/工作区选择（空串表示未选）。
	SetSelection(org, hub, workspace string)
}

// Manager 是服务管理器微件：登录/刷新按钮加
// 组织 → 中心 → 工作区 三级级联选择器。
type Manager struct {
	*Base

	services Services
	ctx      context.Context

	// Org、Hub 与 Workspace 是内部级联选择器，TUI 直接与之交互；
	// 其状态同时镜像到管理器的扁平字段上。
	Org       *Dropdown
	Hub       *Dropdown
	Workspace *Dropdown

	cascade *Cascade

	// mirrors 记录对子选择器模型的镜像订阅，销毁时逐一解除。
	mirrors []mirrorSub
}

type mirrorSub struct {
	model field.Model
	sub   field.Subscription
}

// NewManager 创建服务管理器。prefs 可为 nil（选择不持久化）。
func NewManager(ctx context.Context, name string, services Services, prefs Prefs, opts ...Option) (*Manager, error) {
	m := &Manager{
		Base:     newBase(name, ManagerSchema(), opts...),
		services: services,
		ctx:      ctx,
	}

	org, err := NewDropdown("org", "组织", OptionSourceFunc(services.Organizations), prefs)
	if err != nil {
		return nil, err
	}
	hub, err := NewDropdown("hub", "中心", OptionSourceFunc(func(ctx context.Context) ([]field.Option, error) {
		o, ok := org.Value().(string)
		if !ok || o == "" {
			return nil, nil
		}
		return services.Hubs(ctx, o)
	}), prefs)
	if err != nil {
		return nil, err
	}
	ws, err := NewDropdown("workspace", "工作区", OptionSourceFunc(func(ctx context.Context) ([]field.Option, error) {
		o, okOrg := org.Value().(string)
		h, okHub := hub.Value().(string)
		if !okOrg || !okHub || o == "" || h == "" {
			return nil, nil
		}
		return services.Workspaces(ctx, o, h)
	}), prefs)
	if err != nil {
		return nil, err
	}
	m.Org, m.Hub, m.Workspace = org, hub, ws

	if err := m.mirror(org, "org_"); err != nil {
		return nil, err
	}
	if err := m.mirror(hub, "hub_"); err != nil {
		return nil, err
	}
	if err := m.mirror(ws, "ws_"); err != nil {
		return nil, err
	}

	c := NewCascade()
	c.Add(org)
	c.Add(hub)
	c.Add(ws)
	if err := c.Connect("org", "hub", nil); err != nil {
		return nil, err
	}
	if err := c.Connect("hub", "workspace", nil); err != nil {
		return nil, err
	}
	c.Wire(ctx)
	m.cascade = c

	forward := func(any) { m.forwardSelection() }
	org.OnChange(forward)
	hub.OnChange(forward)
	ws.OnChange(forward)

	return m, nil
}

// mirror 把选择器的 options/value/loading 字段镜像到管理器的扁平字段。
func (m *Manager) mirror(d *Dropdown, prefix string) error {
	pairs := map[string]string{
		"options": prefix + "options",
		"value":   prefix + "value",
		"loading": prefix + "loading",
	}
	for src, dst := range pairs {
		target := dst
		sub, err := d.Model().Subscribe(src, func(old, new any) error {
			return m.Set(target, new)
		})
		if err != nil {
			return err
		}
		m.mirrors = append(m.mirrors, mirrorSub{model: d.Model(), sub: sub})
	}
	return nil
}

// Dispose 销毁复合微件：先解除镜像订阅并销毁三个内部选择器，
// 再销毁自身骨架。每一步都幂等，重复销毁是空操作。
func (m *Manager) Dispose() {
	for _, ms := range m.mirrors {
		ms.model.Unsubscribe(ms.sub)
	}
	m.Org.Dispose()
	m.Hub.Dispose()
	m.Workspace.Dispose()
	m.Base.Dispose()
}

// forwardSelection 把当前三级选择转发给服务协作者。
func (m *Manager) forwardSelection() {
	str := func(v any) string {
		if s, ok := v.(string); ok {
			return s
		}
		return ""
	}
	m.services.SetSelection(str(m.Org.Value()), str(m.Hub.Value()), str(m.Workspace.Value()))
}

// SelectedWorkspace 返回当前工作区 id，未选时为空字符串。
func (m *Manager) SelectedWorkspace() string {
	if s, ok := m.Workspace.Value().(string); ok {
		return s
	}
	return ""
}

// Clicked 处理一次按钮点击：按钮禁用期间忽略，否则刷新服务。
func (m *Manager) Clicked() error {
	if v, _ := m.Get("button_disabled"); v == true {
		return nil
	}
	if err := m.Set("button_clicked", true); err != nil {
		return err
	}
	return m.RefreshServices()
}

// RefreshServices 依次重新拉取组织、中心与工作区列表。
// 首次刷新后按钮改为刷新语义，提示隐藏。
func (m *Manager) RefreshServices() error {
	_ = m.Set("main_loading", true)
	_ = m.Set("button_disabled", true)
	defer func() {
		_ = m.Set("main_loading", false)
		_ = m.Set("button_disabled", false)
		_ = m.Set("button_clicked", false)
	}()

	if err := m.Org.Refresh(m.ctx); err != nil {
		return fmt.Errorf("刷新 Evo 服务失败: %w", err)
	}

	// 选择恢复为同一组织/中心时级联边不触发（值未变更不通知），
	// 下游列表仍需无条件重新拉取，避免再次点击时沿用过期选项。
	if err := m.Hub.Refresh(m.ctx); err != nil {
		return fmt.Errorf("刷新中心列表失败: %w", err)
	}
	if err := m.Workspace.Refresh(m.ctx); err != nil {
		return fmt.Errorf("刷新工作区列表失败: %w", err)
	}

	_ = m.Set("button_text", refreshLabel)
	_ = m.Set("show_prompt", false)
	return nil
}
