package host

import (
	"strings"
	"sync"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// MemoryHost 是进程内的 [Host] 实现，用于测试与单进程运行。
//
// Set 的写入先进入待提交批次，SaveChanges 把批次刷新到已提交状态
// 并按字段派发 "change:<字段>" 事件。
type MemoryHost struct {
	schema field.Schema

	mu        sync.Mutex
	committed map[string]any
	pending   []pendingWrite
	handlers  map[string][]*handlerEntry
	nextID    uint64
}

type pendingWrite struct {
	name  string
	value any
}

type handlerEntry struct {
	id uint64
	fn ChangeHandler
}

var _ Host = (*MemoryHost)(nil)

// NewMemoryHost 按模式创建内存宿主并填充初始值。
func NewMemoryHost(schema field.Schema) *MemoryHost {
	committed := make(map[string]any, len(schema))
	for _, sp := range schema {
		v := sp.Default
		if v == nil && sp.Kind != field.KindNullableString {
			v = sp.Kind.Zero()
		}
		committed[sp.Name] = v
	}
	return &MemoryHost{
		schema:    schema,
		committed: committed,
		handlers:  make(map[string][]*handlerEntry),
	}
}

// Get 实现 [Host] 接口，返回已提交的值。待提交批次对读取不可见。
func (m *MemoryHost) Get(name string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schema.Spec(name); !ok {
		return nil, &field.UnknownFieldError{Field: name}
	}
	return m.committed[name], nil
}

// Set 实现 [Host] 接口，把写入追加到待提交批次。
func (m *MemoryHost) Set(name string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sp, ok := m.schema.Spec(name)
	if !ok {
		return &field.UnknownFieldError{Field: name}
	}
	if err := sp.Kind.Validate(v); err != nil {
		return &field.InvalidValueError{Field: name, Err: err}
	}
	m.pending = append(m.pending, pendingWrite{name: name, value: v})
	return nil
}

// On 实现 [Host] 接口。
func (m *MemoryHost) On(event string, h ChangeHandler) (uint64, error) {
	name, ok := strings.CutPrefix(event, "change:")
	if !ok {
		return 0, &field.UnknownFieldError{Field: event}
	}
	if _, ok := m.schema.Spec(name); !ok {
		return 0, &field.UnknownFieldError{Field: name}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.handlers[event] = append(m.handlers[event], &handlerEntry{id: m.nextID, fn: h})
	return m.nextID, nil
}

// Off 实现 [Host] 接口。幂等。
func (m *MemoryHost) Off(event string, handle uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.handlers[event]
	for i, e := range entries {
		if e.id == handle {
			m.handlers[event] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// SaveChanges 实现 [Host] 接口：把待提交批次写入已提交状态，
// 对每个实际发生变化的字段派发变更事件。同一字段的多次写入
// 以最后一次为准，只派发一次事件。
func (m *MemoryHost) SaveChanges() error {
	m.mu.Lock()

	type change struct {
		name     string
		old, new any
	}
	var changes []change
	seen := make(map[string]int)
	for _, w := range m.pending {
		old := m.committed[w.name]
		sp, _ := m.schema.Spec(w.name)
		if !sp.Volatile && field.Equal(old, w.value) {
			continue
		}
		m.committed[w.name] = w.value
		if i, ok := seen[w.name]; ok {
			changes[i].new = w.value
			continue
		}
		seen[w.name] = len(changes)
		changes = append(changes, change{name: w.name, old: old, new: w.value})
	}
	m.pending = nil

	dispatch := make([][]*handlerEntry, len(changes))
	for i, ch := range changes {
		entries := m.handlers[ChangeEvent(ch.name)]
		dispatch[i] = make([]*handlerEntry, len(entries))
		copy(dispatch[i], entries)
	}
	m.mu.Unlock()

	for i, ch := range changes {
		for _, e := range dispatch[i] {
			e.fn(ch.old, ch.new)
		}
	}
	return nil
}
