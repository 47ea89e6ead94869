// Package home 负责主目录相关的路径缩写与展开：
// 日志与崩溃提示里显示 ~ 形式的路径，配置里的 ~ 路径展开后再使用。
package home

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var homedir, homedirErr = os.UserHomeDir()

func init() {
	if homedirErr != nil {
		slog.Error("获取用户主目录失败", "error", homedirErr)
	}
}

// Dir 返回用户主目录。取不到时为空字符串，缩写与展开都退化为原样返回。
func Dir() string {
	return homedir
}

// Short 把位于主目录下的路径缩写成 ~ 开头的形式，其余路径原样返回。
func Short(p string) string {
	if homedir == "" || !strings.HasPrefix(p, homedir) {
		return p
	}
	return filepath.Join("~", strings.TrimPrefix(p, homedir))
}

// Long 把 ~ 开头的路径展开为主目录下的绝对路径，是 [Short] 的逆操作。
func Long(p string) string {
	if homedir == "" || !strings.HasPrefix(p, "~") {
		return p
	}
	return strings.Replace(p, "~", homedir, 1)
}
