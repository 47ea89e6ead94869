package field

// 快照是与宿主运行时交换状态的单位：整个字段集必须能无损地表示为
// 从字段名到基元值/数组的扁平映射。选项列表编码为 [标签, 值] 对的数组。

// Snapshot 返回全部字段的扁平快照。
func (s *Store) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string]any, len(s.schema))
	for _, sp := range s.schema {
		v := s.values[sp.Name]
		if opts, ok := v.([]Option); ok {
			snap[sp.Name] = OptionsToPairs(opts)
		} else {
			snap[sp.Name] = v
		}
	}
	return snap
}

// OptionsToPairs 把选项列表编码为 [标签, 值] 对的数组。
func OptionsToPairs(opts []Option) [][]any {
	pairs := make([][]any, len(opts))
	for i, o := range opts {
		pairs[i] = []any{o.Label, o.Value}
	}
	return pairs
}

// OptionsFromPairs 从 [标签, 值] 对的数组还原选项列表。
// 形状不符的项被跳过。
func OptionsFromPairs(pairs [][]any) []Option {
	opts := make([]Option, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			continue
		}
		label, ok := p[0].(string)
		if !ok {
			continue
		}
		opts = append(opts, Option{Label: label, Value: p[1]})
	}
	return opts
}
