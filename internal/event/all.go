// Package event 提供应用程序事件跟踪和记录功能
// 该文件定义了微件生命周期与 Evo 服务交互相关的事件记录函数
package event

import (
	"time"
)

// appStartTime 记录应用程序启动时间
var appStartTime time.Time

// AppInitialized 记录应用程序初始化完成事件
// 在应用程序启动完成时调用，用于标记应用开始运行的时间点
func AppInitialized() {
	appStartTime = time.Now()
	send("应用已初始化")
}

// AppExited 记录应用程序退出事件
// 在应用程序退出时调用，计算并记录应用运行时长
func AppExited() {
	duration := time.Since(appStartTime).Truncate(time.Second)
	send(
		"应用已退出",
		"应用运行时长（可读格式）", duration.String(),
		"应用运行时长（秒）", int64(duration.Seconds()),
	)
	Flush()
}

// WidgetMounted 记录微件挂载事件
// props: 附加的事件属性，以键值对形式传入
func WidgetMounted(props ...any) {
	send("微件已挂载", props...)
}

// WidgetDisposed 记录微件销毁事件
func WidgetDisposed(props ...any) {
	send("微件已销毁", props...)
}

// ServicesRefreshed 记录 Evo 服务刷新事件
// 在服务管理器完成一次组织/中心/工作区刷新后调用
func ServicesRefreshed(props ...any) {
	send("Evo 服务已刷新", props...)
}

// SearchPerformed 记录对象搜索事件
// 只记录结果数量等统计属性，不记录搜索内容本身
func SearchPerformed(props ...any) {
	send("对象搜索已执行", props...)
}

// LinkOpened 记录打开 Evo 链接事件
// view 为 "viewer" 或 "overview"
func LinkOpened(view string) {
	send("Evo 链接已打开", "视图", view)
}
