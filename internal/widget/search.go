package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/purpose168/evo-widgets-cn/internal/bind"
	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// ErrNoWorkspace 表示没有选定工作区，无法列举对象。
var ErrNoWorkspace = errors.New("尚未选择工作区")

// typeDisplayNames 把地学对象模式的子分类键映射为显示名。
var typeDisplayNames = []field.Option{
	{Label: "Pointset", Value: "pointset"},
	{Label: "Block Model", Value: "block-model"},
	{Label: "Regular 3D Grid", Value: "regular-3d-grid"},
	{Label: "Regular Masked 3D Grid", Value: "regular-masked-3d-grid"},
	{Label: "Tensor 3D Grid", Value: "tensor-3d-grid"},
	{Label: "Drilling Campaign", Value: "drilling-campaign"},
	{Label: "Downhole Collection", Value: "downhole-collection"},
	{Label: "Triangulated Surface Mesh", Value: "triangulated-surface-mesh"},
	{Label: "Variogram", Value: "variogram"},
}

// TypeDisplayName 返回对象类型键的显示名，未知类型原样返回。
func TypeDisplayName(key string) string {
	for _, o := range typeDisplayNames {
		if o.Value == key {
			return o.Label
		}
	}
	return key
}

// AllTypes 是类型筛选的占位项：不过滤类型。
var AllTypes = field.Option{Label: "全部类型", Value: nil}

// NoMatches 是结果列表为空时的占位项。
var NoMatches = field.Option{Label: "没有匹配的对象", Value: nil}

// SearchSchema 返回对象搜索微件的字段模式。
func SearchSchema() field.Schema {
	typeOpts := make([]field.Option, 0, len(typeDisplayNames)+1)
	typeOpts = append(typeOpts, AllTypes)
	typeOpts = append(typeOpts, typeDisplayNames...)

	return field.Schema{
		{Name: "search_text", Kind: field.KindString},
		{Name: "object_type", Kind: field.KindNullableString},
		{Name: "type_options", Kind: field.KindOptions, Default: typeOpts},
		{Name: "result_options", Kind: field.KindOptions, Default: []field.Option{NoMatches}},
		{Name: "selected_id", Kind: field.KindNullableString},
		{Name: "loading", Kind: field.KindBool, Volatile: true},
		{Name: "status_text", Kind: field.KindString},
		{Name: "metadata_text", Kind: field.KindString},
	}
}

// SearchObject 是可被搜索的地学对象条目。
type SearchObject struct {
	ID       string
	Name     string
	Type     string
	Path     string
	SchemaID string
	Created  time.Time
	Modified time.Time
}

// SearchBackend 是对象搜索的后端协作者。
type SearchBackend interface {
	// Workspace 返回当前工作区 id，未选择时为空字符串。
	Workspace() string
	// ListObjects 列举工作区内指定类型的对象；objectType 为空表示全部类型。
	ListObjects(ctx context.Context, workspace, objectType string) ([]SearchObject, error)
}

// Search 是对象搜索微件：去抖的搜索文本、类型筛选、结果列表与
// 选中对象的元数据。对象列表按（工作区, 类型）缓存，类型或工作区
// 变更时失效；搜索文本变更只在缓存上重新过滤。
type Search struct {
	*Base

	backend SearchBackend
	ctx     context.Context

	textBinding *bind.Binding
	typeBinding *bind.Binding
	selBinding  *bind.Binding

	mu      sync.Mutex
	cache   map[string][]SearchObject
	matched []SearchObject
}

// NewSearch 创建对象搜索微件。
func NewSearch(ctx context.Context, name string, backend SearchBackend, opts ...Option) (*Search, error) {
	s := &Search{
		Base:    newBase(name, SearchSchema(), opts...),
		backend: backend,
		ctx:     ctx,
		cache:   make(map[string][]SearchObject),
	}

	ctrl := s.Controller()

	// 搜索文本去抖提交；提交后在缓存上重新过滤
	tb, err := ctrl.BindText("search_text", bind.ControlFunc(func(any) { s.update() }))
	if err != nil {
		return nil, err
	}
	s.textBinding = tb

	// 类型变更立即生效并触发重新列举（缓存键变化）
	yb, err := ctrl.BindDiscrete("object_type", bind.ControlFunc(func(any) { s.update() }),
		bind.WithNullSentinel(), bind.WithGuards("loading"))
	if err != nil {
		return nil, err
	}
	s.typeBinding = yb

	// 选中结果变更时刷新元数据文本
	sb, err := ctrl.BindDiscrete("selected_id", bind.ControlFunc(s.selectionChanged),
		bind.WithNullSentinel(), bind.WithGuards("loading"))
	if err != nil {
		return nil, err
	}
	s.selBinding = sb

	return s, nil
}

// SetSearchText 处理一次搜索文本输入（去抖）。
func (s *Search) SetSearchText(text string) {
	s.textBinding.Input(text)
}

// FlushSearch 立即提交待去抖的搜索文本（失焦/回车）。
func (s *Search) FlushSearch() {
	s.textBinding.Flush()
}

// SelectType 处理一次类型筛选选择。空字符串表示全部类型。
func (s *Search) SelectType(key string) {
	s.typeBinding.Input(key)
}

// SelectResult 处理一次结果选择。
func (s *Search) SelectResult(id string) {
	s.selBinding.Input(id)
}

// Results 返回当前过滤后的对象列表。
func (s *Search) Results() []SearchObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SearchObject, len(s.matched))
	copy(out, s.matched)
	return out
}

// Refresh 丢弃当前（工作区, 类型）的缓存并重新列举。
// 工作区切换后由调用方触发。
func (s *Search) Refresh() {
	ws := s.backend.Workspace()
	s.mu.Lock()
	delete(s.cache, s.cacheKey(ws))
	s.mu.Unlock()
	s.update()
}

func (s *Search) cacheKey(workspace string) string {
	return workspace + "\x00" + s.currentType()
}

func (s *Search) currentType() string {
	v, _ := s.Get("object_type")
	if t, ok := v.(string); ok {
		return t
	}
	return ""
}

// update 重新计算结果列表、状态文本与选中项。
func (s *Search) update() {
	objects, err := s.objects()
	if err != nil {
		_ = s.Set("result_options", []field.Option{NoMatches})
		_ = s.Set("selected_id", nil)
		if errors.Is(err, ErrNoWorkspace) {
			_ = s.Set("status_text", "请选择工作区")
		} else {
			_ = s.Set("status_text", fmt.Sprintf("搜索失败: %v", err))
		}
		return
	}

	query, _ := s.Get("search_text")
	text, _ := query.(string)
	matched := filterObjects(objects, text)

	s.mu.Lock()
	s.matched = matched
	s.mu.Unlock()

	if len(matched) == 0 {
		_ = s.Set("result_options", []field.Option{NoMatches})
		_ = s.Set("status_text", "没有结果")
		_ = s.Set("selected_id", nil)
		_ = s.Set("metadata_text", "")
		return
	}

	results := make([]field.Option, len(matched))
	for i, o := range matched {
		results[i] = field.Option{
			Label: fmt.Sprintf("%s (%s)", o.Name, TypeDisplayName(o.Type)),
			Value: o.ID,
		}
	}
	_ = s.Set("result_options", results)
	_ = s.Set("status_text", fmt.Sprintf("找到 %d 个对象", len(matched)))

	// 当前选中项不在结果中时自动选中首个结果
	cur, _ := s.Get("selected_id")
	if id, ok := cur.(string); !ok || !containsObject(matched, id) {
		_ = s.Set("selected_id", matched[0].ID)
	}
}

// objects 返回当前（工作区, 类型）的对象列表，优先取缓存。
func (s *Search) objects() ([]SearchObject, error) {
	ws := s.backend.Workspace()
	if ws == "" {
		return nil, ErrNoWorkspace
	}

	key := s.cacheKey(ws)
	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	_ = s.Set("loading", true)
	defer func() { _ = s.Set("loading", false) }()

	list, err := s.backend.ListObjects(s.ctx, ws, s.currentType())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = list
	s.mu.Unlock()
	return list, nil
}

// selectionChanged 是 selected_id 的 from-model 投影：重建元数据文本。
func (s *Search) selectionChanged(v any) {
	id, _ := v.(string)
	if id == "" {
		_ = s.Set("metadata_text", "")
		return
	}

	s.mu.Lock()
	var obj *SearchObject
	for i := range s.matched {
		if s.matched[i].ID == id {
			obj = &s.matched[i]
			break
		}
	}
	s.mu.Unlock()

	if obj == nil {
		_ = s.Set("metadata_text", "")
		return
	}
	_ = s.Set("metadata_text", formatMetadata(*obj))
}

// filterObjects 按名称做不区分大小写的子串过滤。
func filterObjects(objects []SearchObject, query string) []SearchObject {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return objects
	}
	var out []SearchObject
	for _, o := range objects {
		if strings.Contains(strings.ToLower(o.Name), query) {
			out = append(out, o)
		}
	}
	return out
}

func containsObject(objects []SearchObject, id string) bool {
	for _, o := range objects {
		if o.ID == id {
			return true
		}
	}
	return false
}

// formatMetadata 生成选中对象的元数据文本块。
func formatMetadata(o SearchObject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "名称: %s\n", o.Name)
	fmt.Fprintf(&b, "类型: %s\n", TypeDisplayName(o.Type))
	fmt.Fprintf(&b, "路径: %s\n", o.Path)
	fmt.Fprintf(&b, "ID: %s\n", o.ID)
	if o.SchemaID != "" {
		fmt.Fprintf(&b, "模式: %s\n", o.SchemaID)
	}
	if !o.Created.IsZero() {
		fmt.Fprintf(&b, "创建于: %s\n", humanize.Time(o.Created))
	}
	if !o.Modified.IsZero() {
		fmt.Fprintf(&b, "修改于: %s\n", humanize.Time(o.Modified))
	}
	return strings.TrimRight(b.String(), "\n")
}
