// Package host 定义微件与宿主运行时之间的同步协议。
//
// 宿主按微件实例暴露 get/set/on/off 与 save_changes 操作；
// [Adapter] 把该协议适配为 [field.Model]，使绑定与渲染逻辑
// 无需关心宿主的存在。
package host

// ChangeHandler 是宿主侧的变更处理器，收到变更前后的值。
type ChangeHandler func(old, new any)

// Host 是宿主运行时按微件实例暴露的同步对象。
// 事件名的形式为 "change:<字段名>"。
type Host interface {
	// Get 返回宿主侧字段当前值。
	Get(name string) (any, error)
	// Set 写入宿主侧字段值。写入先进入待提交批次，由 SaveChanges 刷新。
	Set(name string, v any) error
	// On 注册事件处理器，返回用于 Off 的句柄。
	On(event string, h ChangeHandler) (handle uint64, err error)
	// Off 移除事件处理器。幂等。
	Off(event string, handle uint64)
	// SaveChanges 把一批 Set 调用刷新到宿主的持久状态。
	SaveChanges() error
}

// ChangeEvent 构造字段变更事件名。
func ChangeEvent(name string) string {
	return "change:" + name
}
