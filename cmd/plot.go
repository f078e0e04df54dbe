package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locplot/internal/app"
	"locplot/internal/chart"
	"locplot/internal/config"
	"locplot/internal/counter"
	"locplot/internal/git"
	"locplot/internal/shell"

	"github.com/spf13/cobra"
)

// plotOptions 存放 plot 命令的可配置参数。未显式设置的参数沿用配置文件。
type plotOptions struct {
	output      string
	excludes    []string
	releases    int
	counter     string
	keepClone   bool
	timeout     time.Duration
	data        string
	metricsFile string
	title       string
	theme       string
	noSummary   bool
}

// newPlotCmd 创建 plot 子命令。
// 示例：
//
//	locplot plot .
//	locplot plot https://github.com/org/repo --exclude 'vendor/*' --output history.html
func newPlotCmd(global *globalOptions) *cobra.Command {
	options := plotOptions{}

	plotCmd := &cobra.Command{
		Use:   "plot <repository>",
		Short: "遍历发布标签并生成代码行数堆叠柱状图",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.load(cmd)
			if err != nil {
				return err
			}
			if err := options.apply(cmd, cfg); err != nil {
				return err
			}

			theme, err := chart.ParseTheme(cfg.Chart.Theme)
			if err != nil {
				return err
			}

			client := git.NewClient(shell.NewSubprocess(cfg.Git.Timeout, logger), cfg.Git.Binary)
			lineCounter, err := counter.New(cfg.Counter.Kind, shell.NewSubprocess(cfg.Counter.Timeout, logger), cfg.Counter.Binary)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := app.NewRunner(client, lineCounter, cmd.OutOrStdout(), logger)
			return runner.Run(ctx, app.Options{
				Repository:   args[0],
				Output:       cfg.Output,
				Excludes:     cfg.Excludes,
				Releases:     cfg.Releases,
				KeepClone:    cfg.KeepClone,
				CleanIgnored: cfg.Git.CleanIgnored,
				DataFile:     options.data,
				MetricsFile:  options.metricsFile,
				Summary:      !options.noSummary,
				Chart: chart.Options{
					Title:  cfg.Chart.Title,
					Theme:  theme,
					Width:  cfg.Chart.Width,
					Height: cfg.Chart.Height,
				},
			})
		},
	}

	flags := plotCmd.Flags()
	flags.StringVarP(&options.output, "output", "o", "loc.html", "图表输出文件")
	flags.StringArrayVarP(&options.excludes, "exclude", "e", nil, "排除的 glob，可重复指定，原样传给计数器")
	flags.IntVar(&options.releases, "releases", 52, "最多遍历的最新发布数量")
	flags.StringVar(&options.counter, "counter", "tokei", "计数器: tokei 或 scc")
	flags.BoolVar(&options.keepClone, "keep-clone", false, "保留从 URL 克隆的临时目录")
	flags.DurationVar(&options.timeout, "timeout", 30*time.Minute, "单条 git/计数器命令的超时，0 表示不限制")
	flags.StringVar(&options.data, "data", "", "额外导出统计数据（.json/.yaml）")
	flags.StringVar(&options.metricsFile, "metrics-file", "", "额外写出 Prometheus 文本格式指标")
	flags.StringVar(&options.title, "title", "", "图表标题")
	flags.StringVar(&options.theme, "theme", "", "图表主题: light 或 dark")
	flags.BoolVar(&options.noSummary, "no-summary", false, "不打印汇总表格")

	return plotCmd
}

// apply 用显式设置的命令行参数覆盖配置，然后重新校验。
func (o *plotOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("exclude") {
		cfg.Excludes = append(cfg.Excludes, o.excludes...)
	}
	if flags.Changed("releases") {
		cfg.Releases = o.releases
	}
	if flags.Changed("counter") {
		cfg.Counter.Kind = o.counter
	}
	if flags.Changed("keep-clone") {
		cfg.KeepClone = o.keepClone
	}
	if flags.Changed("timeout") {
		cfg.Git.Timeout = o.timeout
		cfg.Counter.Timeout = o.timeout
	}
	if flags.Changed("title") {
		cfg.Chart.Title = o.title
	}
	if flags.Changed("theme") {
		cfg.Chart.Theme = o.theme
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
