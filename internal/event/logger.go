package event

import (
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"
)

var _ posthog.Logger = logger{}

// logger 把 PostHog 客户端的内部日志并入应用的 slog 输出，
// 遥测日志与微件日志落在同一个轮转文件里。
type logger struct{}

func (logger) Debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}

func (logger) Logf(format string, args ...any) {
	slog.Info(fmt.Sprintf(format, args...))
}

func (logger) Warnf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...))
}

func (logger) Errorf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
}
