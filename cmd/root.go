// Package cmd 提供 locplot 的命令行入口与子命令编排。
package cmd

import (
	"fmt"
	"log/slog"

	"locplot/internal/config"
	"locplot/internal/logging"

	"github.com/spf13/cobra"
)

// globalOptions 存放所有子命令共享的参数。
type globalOptions struct {
	configPath string
	verbose    bool
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	global := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "locplot",
		Short: "绘制仓库各发布版本的代码行数变化",
		Long: "locplot 逐个检出仓库的发布标签，调用外部统计工具（tokei/scc）按语言计数，\n" +
			"并把结果渲染为堆叠柱状图。运行结束后总会恢复仓库原来的分支。",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "配置文件路径，默认查找 ./locplot.yaml")
	rootCmd.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "输出 debug 日志（包括每条子进程命令）")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newPlotCmd(global))
	rootCmd.AddCommand(newCountCmd(global))
	rootCmd.AddCommand(newTagsCmd(global))
	rootCmd.AddCommand(newCountersCmd(global))

	return rootCmd
}

// load 读取配置并构造 logger。日志写到 stderr，stdout 只留给结果输出。
func (g *globalOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	if g.verbose {
		level = slog.LevelDebug
	}

	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, logger, nil
}
