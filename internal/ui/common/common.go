// Package common 定义 TUI 各组件共享的依赖与小工具。
package common

import (
	"github.com/purpose168/evo-widgets-cn/internal/app"
	"github.com/purpose168/evo-widgets-cn/internal/config"
	"github.com/purpose168/evo-widgets-cn/internal/ui/styles"
)

// Common 定义通用 UI 选项和配置。
type Common struct {
	App    *app.App
	Styles *styles.Styles
}

// Config 返回与此 [Common] 实例关联的配置。
func (c *Common) Config() *config.Config {
	return c.App.Config
}

// DefaultCommon 返回默认的通用 UI 配置。
func DefaultCommon(app *app.App) *Common {
	s := styles.DefaultStyles()
	return &Common{
		App:    app,
		Styles: &s,
	}
}
