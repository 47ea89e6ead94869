// Package cmd 实现 evowidgets 的命令行入口。
package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/purpose168/evo-widgets-cn/internal/app"
	"github.com/purpose168/evo-widgets-cn/internal/config"
	"github.com/purpose168/evo-widgets-cn/internal/env"
	"github.com/purpose168/evo-widgets-cn/internal/event"
	"github.com/purpose168/evo-widgets-cn/internal/home"
	"github.com/purpose168/evo-widgets-cn/internal/log"
	"github.com/purpose168/evo-widgets-cn/internal/ui/common"
	ui "github.com/purpose168/evo-widgets-cn/internal/ui/model"
	"github.com/purpose168/evo-widgets-cn/internal/version"
)

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "调试")
	rootCmd.Flags().BoolP("help", "h", false, "帮助")

	rootCmd.AddCommand(
		logsCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "evowidgets",
	Short: "Seequent Evo 服务的终端微件",
	Long:  "连接 Seequent Evo，在终端中选择组织、中心与工作区，并搜索地学对象",
	Example: `
# 在交互模式下运行
evowidgets

# 启用调试日志运行
evowidgets -d

# 打印版本
evowidgets -v

# 查看日志
evowidgets logs -f
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cfg, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Shutdown()
		defer log.RecoverPanic("main", func() {
			slog.Error("主循环 panic: 正在退出")
		})

		com := common.DefaultCommon(app)
		model := ui.New(com)

		program := tea.NewProgram(
			model,
			tea.WithContext(cmd.Context()),
		)
		go app.Subscribe(program)

		if _, err := program.Run(); err != nil {
			event.Error(err)
			slog.Error("TUI 运行错误", "error", err)
			return errors.New("evowidgets 异常退出。日志位于 " + home.Short(cfg.LogPath()))
		}
		return nil
	},
}

var heartbit = lipgloss.NewStyle().Foreground(charmtone.Dolly).SetString(`
   ▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄
  ██ ▄▄▄▄▄▄▄▄▄▄▄ ██
  ██ █ Evo 微件 █ ██
  ██ ▀▀▀▀▀▀▀▀▀▀▀ ██
  ▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀
`)

// copied from cobra:
const defaultVersionTemplate = `{{with .DisplayName}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`

func Execute() {
	if term.IsTerminal(os.Stdout.Fd()) {
		var b bytes.Buffer
		w := colorprofile.NewWriter(os.Stdout, os.Environ())
		w.Forward = &b
		_, _ = w.WriteString(heartbit.String())
		rootCmd.SetVersionTemplate(b.String() + "\n" + defaultVersionTemplate)
	}
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// setupApp 加载配置、初始化日志与遥测并装配应用。
func setupApp(cmd *cobra.Command) (*app.App, *config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	ctx := cmd.Context()

	cfg, err := config.Load(env.New())
	if err != nil {
		return nil, nil, err
	}
	if debug {
		cfg.Debug = true
	}

	log.Setup(cfg.LogPath(), cfg.Debug)

	if !cfg.DisableMetrics {
		event.Init()
	}

	appInstance, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("创建应用实例失败", "error", err)
		return nil, nil, err
	}
	return appInstance, cfg, nil
}
