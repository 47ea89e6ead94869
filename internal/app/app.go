// Package app 装配应用：配置、Evo 服务协作者、微件目录与事件代理。
// TUI 作为宿主运行时订阅字段变更事件并驱动微件。
package app

import (
	"context"
	"log/slog"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/purpose168/evo-widgets-cn/internal/config"
	"github.com/purpose168/evo-widgets-cn/internal/env"
	"github.com/purpose168/evo-widgets-cn/internal/event"
	"github.com/purpose168/evo-widgets-cn/internal/evo"
	"github.com/purpose168/evo-widgets-cn/internal/log"
	"github.com/purpose168/evo-widgets-cn/internal/pubsub"
	"github.com/purpose168/evo-widgets-cn/internal/widget"
)

// App 持有应用的全部长生命周期组件。
type App struct {
	Config   *config.Config
	Services *evo.ServiceManager
	Prefs    *env.DotEnv

	Manager  *widget.Manager
	Search   *widget.Search
	Feedback *widget.Feedback

	events *pubsub.Broker[pubsub.FieldChange]

	globalCtx context.Context
	tuiWG     sync.WaitGroup
	tuiCancel context.CancelFunc
}

// New 装配应用。微件在此构造但尚未挂载，挂载由 TUI 初始化时完成。
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	prefs, err := env.NewDotEnv(cfg.PrefsPath())
	if err != nil {
		return nil, err
	}

	client := evo.NewHTTPClient(evo.StaticToken(cfg.AccessToken), cfg.Debug)
	services := evo.NewServiceManager(client, cfg.DiscoveryURL)

	manager, err := widget.NewManager(ctx, "manager", services, prefs)
	if err != nil {
		return nil, err
	}
	search, err := widget.NewSearch(ctx, "search", services)
	if err != nil {
		return nil, err
	}
	feedback := widget.NewFeedback("feedback")

	a := &App{
		Config:    cfg,
		Services:  services,
		Prefs:     prefs,
		Manager:   manager,
		Search:    search,
		Feedback:  feedback,
		events:    pubsub.NewBroker[pubsub.FieldChange](),
		globalCtx: ctx,
	}

	// 工作区选择变更时使搜索缓存失效
	manager.Workspace.OnChange(func(any) { search.Refresh() })

	event.AppInitialized()
	return a, nil
}

// Mount 挂载全部微件：为每个字段注册把变更发布到事件代理的渲染函数，
// 随后进入挂载态（安装订阅并执行各字段的初始渲染）。
func (a *App) Mount() error {
	for _, b := range a.bases() {
		widgetName := b.Name()
		for _, name := range b.Fields() {
			fieldName := name
			err := b.OnRender(fieldName, func(v any) {
				a.events.Publish(pubsub.FieldChangedEvent, pubsub.FieldChange{
					Widget: widgetName,
					Field:  fieldName,
					New:    v,
				})
			})
			if err != nil {
				return err
			}
		}
	}
	for _, b := range a.bases() {
		if err := b.Mount(); err != nil {
			return err
		}
		event.WidgetMounted("微件", b.Name())
	}
	return nil
}

func (a *App) bases() []*widget.Base {
	return []*widget.Base{a.Manager.Base, a.Search.Base, a.Feedback.Base}
}

// Events 返回字段变更事件的订阅入口。
func (a *App) Events() pubsub.Subscriber[pubsub.FieldChange] {
	return a.events
}

// Subscribe 把字段变更事件作为 tea.Msg 转发给 TUI 程序。
// 阻塞直到应用关闭，应在独立的 goroutine 中运行。
func (a *App) Subscribe(program *tea.Program) {
	defer log.RecoverPanic("app.Subscribe", func() {
		slog.Info("TUI订阅 panic: 尝试优雅关闭")
		program.Quit()
	})

	a.tuiWG.Add(1)
	defer a.tuiWG.Done()

	ctx, cancel := context.WithCancel(a.globalCtx)
	a.tuiCancel = cancel

	ch := a.events.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("TUI消息处理器正在关闭")
			return
		case ev, ok := <-ch:
			if !ok {
				slog.Debug("TUI消息通道已关闭")
				return
			}
			program.Send(ev)
		}
	}
}

// Shutdown 执行优雅关闭：销毁微件、关闭事件代理并刷出遥测。
func (a *App) Shutdown() {
	if a.tuiCancel != nil {
		a.tuiCancel()
	}
	a.tuiWG.Wait()

	// 通过具体类型销毁，复合微件的 Dispose 会连带销毁其子选择器
	for _, w := range []interface {
		Name() string
		Dispose()
	}{a.Manager, a.Search, a.Feedback} {
		w.Dispose()
		event.WidgetDisposed("微件", w.Name())
	}
	a.events.Shutdown()
	event.AppExited()
}
