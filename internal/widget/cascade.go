package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrCycle 表示级联边会构成环。级联图按构造保持无环，
// 重算只沿单向边传播。
var ErrCycle = errors.New("级联边构成环")

// Edge 是一条级联重算边：From 节点的选择变更触发 To 节点的重算。
type Edge struct {
	From, To  string
	Recompute func(ctx context.Context, value any) error
}

// Cascade 把若干下拉选择器连成无环的级联图
// （例如 组织 → 中心 → 工作区）。
type Cascade struct {
	nodes map[string]*Dropdown
	edges []Edge
}

// NewCascade 创建空级联图。
func NewCascade() *Cascade {
	return &Cascade{nodes: make(map[string]*Dropdown)}
}

// Add 登记一个节点。
func (c *Cascade) Add(d *Dropdown) {
	c.nodes[d.Name()] = d
}

// Node 按名称返回节点。
func (c *Cascade) Node(name string) (*Dropdown, bool) {
	d, ok := c.nodes[name]
	return d, ok
}

// Connect 添加 from → to 的重算边。recompute 为 nil 时默认刷新目标节点。
// 两端必须已登记；会构成环时返回 [ErrCycle]。
func (c *Cascade) Connect(from, to string, recompute func(ctx context.Context, value any) error) error {
	if _, ok := c.nodes[from]; !ok {
		return fmt.Errorf("未登记的级联节点: %s", from)
	}
	target, ok := c.nodes[to]
	if !ok {
		return fmt.Errorf("未登记的级联节点: %s", to)
	}
	if c.reachable(to, from) {
		return fmt.Errorf("%w: %s → %s", ErrCycle, from, to)
	}

	if recompute == nil {
		recompute = func(ctx context.Context, _ any) error {
			return target.Refresh(ctx)
		}
	}
	c.edges = append(c.edges, Edge{From: from, To: to, Recompute: recompute})
	return nil
}

// reachable 判断沿已有边能否从 from 走到 to。
func (c *Cascade) reachable(from, to string) bool {
	if from == to {
		return true
	}
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range c.edges {
			if e.From != cur || seen[e.To] {
				continue
			}
			if e.To == to {
				return true
			}
			seen[e.To] = true
			stack = append(stack, e.To)
		}
	}
	return false
}

// Wire 为每个有出边的节点安装变更回调：选择变更时沿出边依次重算下游。
// 重算失败只记录日志，不中断其余边。
func (c *Cascade) Wire(ctx context.Context) {
	for name, node := range c.nodes {
		var out []Edge
		for _, e := range c.edges {
			if e.From == name {
				out = append(out, e)
			}
		}
		if len(out) == 0 {
			continue
		}
		edges := out
		node.OnChange(func(value any) {
			for _, e := range edges {
				if err := e.Recompute(ctx, value); err != nil {
					slog.Error("级联重算失败", "from", e.From, "to", e.To, "error", err)
				}
			}
		})
	}
}
