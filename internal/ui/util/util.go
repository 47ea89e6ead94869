// Package util 提供 UI 消息处理的工具函数。
package util

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// CmdHandler 创建一个返回指定消息的命令
// 参数: msg - 要返回的消息
// 返回值: 一个执行时返回该消息的命令
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// InfoType 定义信息消息的类型
type InfoType int

const (
	InfoTypeInfo    InfoType = iota // 普通信息
	InfoTypeSuccess                 // 成功信息
	InfoTypeWarn                    // 警告信息
	InfoTypeError                   // 错误信息
)

// InfoMsg 是显示在状态栏的瞬时信息。
type InfoMsg struct {
	Type InfoType
	Msg  string
	TTL  time.Duration
}

// ClearStatusMsg 请求清除状态栏的瞬时信息。
type ClearStatusMsg struct{}

// NewInfoMsg 创建新的普通信息消息
func NewInfoMsg(info string) InfoMsg {
	return InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	}
}

// NewErrorMsg 创建新的错误信息消息
func NewErrorMsg(err error) InfoMsg {
	return InfoMsg{
		Type: InfoTypeError,
		Msg:  err.Error(),
	}
}

// ReportSuccess 报告成功信息并创建信息消息命令
func ReportSuccess(info string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeSuccess, Msg: info})
}
