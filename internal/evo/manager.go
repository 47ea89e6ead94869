package evo

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/purpose168/evo-widgets-cn/internal/csync"
	"github.com/purpose168/evo-widgets-cn/internal/field"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// Selection 是当前的组织/中心/工作区选择，空串表示未选。
type Selection struct {
	Org       string
	Hub       string
	Workspace string
}

// ServiceManager 聚合发现、工作区与对象客户端，
// 实现服务管理器微件与对象搜索微件的协作者接口。
type ServiceManager struct {
	discovery  *DiscoveryClient
	workspaces *WorkspaceClient
	objects    *ObjectClient

	orgs      *csync.Slice[Organization]
	wsCache   *csync.Map[string, []Workspace]
	selection *csync.Value[Selection]
}

var (
	_ widget.Services      = (*ServiceManager)(nil)
	_ widget.SearchBackend = (*ServiceManager)(nil)
)

// NewServiceManager 创建服务管理器。client 须已配置 Bearer 认证。
func NewServiceManager(client *http.Client, discoveryURL string) *ServiceManager {
	return &ServiceManager{
		discovery:  NewDiscoveryClient(client, discoveryURL),
		workspaces: NewWorkspaceClient(client),
		objects:    NewObjectClient(client),
		orgs:       csync.NewSlice[Organization](),
		wsCache:    csync.NewMap[string, []Workspace](),
		selection:  csync.NewValue(Selection{}),
	}
}

// Organizations 实现 [widget.Services] 接口：刷新并返回组织选项。
func (m *ServiceManager) Organizations(ctx context.Context) ([]field.Option, error) {
	orgs, err := m.discovery.Discover(ctx)
	if err != nil {
		return nil, err
	}
	m.orgs.SetSlice(orgs)
	m.wsCache.Reset(map[string][]Workspace{})

	opts := make([]field.Option, len(orgs))
	for i, o := range orgs {
		opts[i] = field.Option{Label: o.DisplayName, Value: o.ID.String()}
	}
	return opts, nil
}

// Hubs 实现 [widget.Services] 接口：返回组织的中心选项（取自发现结果）。
func (m *ServiceManager) Hubs(ctx context.Context, org string) ([]field.Option, error) {
	o, ok := m.org(org)
	if !ok {
		return nil, fmt.Errorf("未知的组织: %s", org)
	}
	opts := make([]field.Option, len(o.Hubs))
	for i, h := range o.Hubs {
		opts[i] = field.Option{Label: h.DisplayName, Value: h.Code}
	}

	// 预取各中心的工作区列表，后续的级联刷新直接命中缓存
	m.prefetchWorkspaces(ctx, o)
	return opts, nil
}

// Workspaces 实现 [widget.Services] 接口：返回中心下的工作区选项。
func (m *ServiceManager) Workspaces(ctx context.Context, org, hub string) ([]field.Option, error) {
	list, err := m.workspaceList(ctx, org, hub)
	if err != nil {
		return nil, err
	}
	opts := make([]field.Option, len(list))
	for i, w := range list {
		opts[i] = field.Option{Label: w.DisplayName, Value: w.ID.String()}
	}
	return opts, nil
}

// SetSelection 实现 [widget.Services] 接口。
func (m *ServiceManager) SetSelection(org, hub, workspace string) {
	m.selection.Set(Selection{Org: org, Hub: hub, Workspace: workspace})
}

// Selection 返回当前选择。
func (m *ServiceManager) Selection() Selection {
	return m.selection.Get()
}

// Workspace 实现 [widget.SearchBackend] 接口。
func (m *ServiceManager) Workspace() string {
	return m.selection.Get().Workspace
}

// ListObjects 实现 [widget.SearchBackend] 接口：列举当前选定中心下
// 工作区的对象，按类型键过滤。
func (m *ServiceManager) ListObjects(ctx context.Context, workspace, objectType string) ([]widget.SearchObject, error) {
	sel := m.selection.Get()
	hubURL, err := m.hubURL(sel.Org, sel.Hub)
	if err != nil {
		return nil, err
	}

	objects, err := m.objects.List(ctx, hubURL, sel.Org, workspace)
	if err != nil {
		return nil, err
	}

	var out []widget.SearchObject
	for _, o := range objects {
		key := o.TypeKey()
		if objectType != "" && key != objectType {
			continue
		}
		out = append(out, widget.SearchObject{
			ID:       o.ID.String(),
			Name:     o.Name,
			Type:     key,
			Path:     o.Path,
			SchemaID: o.SchemaID,
			Created:  o.Created,
			Modified: o.Modified,
		})
	}
	return out, nil
}

// ObjectReference 构造当前选择下某对象的引用地址（用于 Evo 链接）。
func (m *ServiceManager) ObjectReference(objectID string) (string, error) {
	sel := m.selection.Get()
	hubURL, err := m.hubURL(sel.Org, sel.Hub)
	if err != nil {
		return "", err
	}
	return ReferenceURL(hubURL, sel.Org, sel.Workspace, objectID), nil
}

// org 按 id 在发现缓存中查找组织。
func (m *ServiceManager) org(id string) (Organization, bool) {
	for o := range m.orgs.Seq() {
		if o.ID.String() == id {
			return o, true
		}
	}
	return Organization{}, false
}

// hubURL 返回组织下某中心的服务地址。
func (m *ServiceManager) hubURL(org, hub string) (string, error) {
	o, ok := m.org(org)
	if !ok {
		return "", fmt.Errorf("未知的组织: %s", org)
	}
	for _, h := range o.Hubs {
		if h.Code == hub {
			return h.URL, nil
		}
	}
	return "", fmt.Errorf("组织 %s 下没有中心 %s", org, hub)
}

// prefetchWorkspaces 并行拉取组织各中心的工作区列表并填充缓存。
// 单个中心失败只跳过，不影响其余中心。
func (m *ServiceManager) prefetchWorkspaces(ctx context.Context, o Organization) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, h := range o.Hubs {
		hub := h
		g.Go(func() error {
			list, err := m.workspaces.List(ctx, hub.URL, o.ID.String())
			if err != nil {
				return nil //nolint:nilerr
			}
			m.wsCache.Set(o.ID.String()+"/"+hub.Code, list)
			return nil
		})
	}
	_ = g.Wait()
}

// workspaceList 返回中心下的工作区，优先取预取缓存。
func (m *ServiceManager) workspaceList(ctx context.Context, org, hub string) ([]Workspace, error) {
	if list, ok := m.wsCache.Get(org + "/" + hub); ok {
		return list, nil
	}
	hubURL, err := m.hubURL(org, hub)
	if err != nil {
		return nil, err
	}
	list, err := m.workspaces.List(ctx, hubURL, org)
	if err != nil {
		return nil, err
	}
	m.wsCache.Set(org+"/"+hub, list)
	return list, nil
}
