// Package bind 把界面控件桥接到字段模型：文本输入走尾沿去抖，
// 离散控件（选择、开关、滑块）立即提交，并负责空值哨兵转换与
// 加载/禁用闸门。一个微件的全部绑定由同一个 [Controller] 拥有，
// 销毁时整体拆除。
package bind

import (
	"sync"
	"time"
)

// DefaultDebounce 是文本输入的默认去抖间隔。
const DefaultDebounce = 300 * time.Millisecond

// debounceState 是去抖器的状态。
type debounceState int

const (
	stateIdle    debounceState = iota // 空闲，无待提交值
	statePending                      // 有待提交值，定时器运行中
	stateClosed                       // 已关闭，后续输入与到期定时器均被忽略
)

// Debouncer 是尾沿去抖器：快速连续输入只在静默期结束后提交最后一个值。
//
// 内部是显式的 Idle → Pending(value, timer) 状态机而非零散的定时器变量，
// 以保证取消与合并的正确性。已取消/已关闭后到期的定时器是静默空操作。
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	commit  func(v any)
	state   debounceState
	pending any
	timer   *time.Timer
	gen     uint64 // 代次计数，用于识别过期定时器
}

// NewDebouncer 创建去抖器；delay 不为正时使用 [DefaultDebounce]。
// commit 在定时器到期或 Flush 时带着最后的待提交值被调用。
func NewDebouncer(delay time.Duration, commit func(v any)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Input 缓冲最新值并重置定时器。静默期内的多次输入合并为至多一次提交。
func (d *Debouncer) Input(v any) {
	d.mu.Lock()
	if d.state == stateClosed {
		d.mu.Unlock()
		return
	}
	d.pending = v
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.state = statePending
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
	d.mu.Unlock()
}

// fire 在定时器到期时提交待处理值。代次不匹配说明定时器已过期，静默忽略。
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.state != statePending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.reset()
	d.mu.Unlock()

	d.commit(v)
}

// Flush 立即提交待处理值（控件失焦/提交时调用）。无待处理值时是空操作。
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.state != statePending {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.gen++
	d.reset()
	d.mu.Unlock()

	d.commit(v)
}

// Cancel 丢弃待处理值并停止定时器。
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == statePending {
		d.gen++
		d.reset()
	}
}

// Close 取消待处理值并永久关闭去抖器。幂等。
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.gen++
	d.state = stateClosed
}

// Pending 返回是否有待提交值。
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == statePending
}

// reset 回到空闲态。调用方必须持有锁。
func (d *Debouncer) reset() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.state = stateIdle
}
