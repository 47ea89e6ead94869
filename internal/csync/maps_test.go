package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMap_SetGetDel 测试Map的基本读写与删除
func TestMap_SetGetDel(t *testing.T) {
	t.Parallel()

	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 2, m.Len())

	m.Del("a")
	_, ok = m.Get("a")
	require.False(t, ok)
}

// TestMap_Reset 测试Reset替换整个内部映射
func TestMap_Reset(t *testing.T) {
	t.Parallel()

	m := NewMapFrom(map[string]int{"a": 1})
	m.Reset(map[string]int{"b": 2})

	_, ok := m.Get("a")
	require.False(t, ok)
	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

// TestMap_Seq2 测试迭代器产出的是快照
func TestMap_Seq2(t *testing.T) {
	t.Parallel()

	m := NewMapFrom(map[string]int{"a": 1, "b": 2})
	got := map[string]int{}
	for k, v := range m.Seq2() {
		got[k] = v
		// 迭代期间的写入不影响快照
		m.Set("c", 3)
	}
	require.Equal(t, map[string]int{"a": 1, "b": 2}, got)
}

// TestMap_ConcurrentAccess 测试并发读写安全性
func TestMap_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewMap[int, int]()
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Set(i, i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Get(i)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 100, m.Len())
}

// TestSlice_AppendGet 测试Slice的追加与索引访问
func TestSlice_AppendGet(t *testing.T) {
	t.Parallel()

	s := NewSlice[string]()
	s.Append("a", "b")

	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = s.Get(5)
	require.False(t, ok)
	require.Equal(t, 2, s.Len())
}

// TestSlice_SetSliceCopies 测试SetSlice与Copy均为值拷贝
func TestSlice_SetSliceCopies(t *testing.T) {
	t.Parallel()

	src := []int{1, 2, 3}
	s := NewSliceFrom(src)
	src[0] = 99

	got := s.Copy()
	require.Equal(t, []int{1, 2, 3}, got)

	got[1] = 99
	again := s.Copy()
	require.Equal(t, []int{1, 2, 3}, again)
}

// TestSlice_Seq 测试迭代器产出全部元素
func TestSlice_Seq(t *testing.T) {
	t.Parallel()

	s := NewSliceFrom([]int{1, 2, 3})
	var got []int
	for v := range s.Seq() {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}
