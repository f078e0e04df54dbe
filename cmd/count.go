package cmd

import (
	"errors"
	"strings"

	"locplot/internal/counter"
	"locplot/internal/report"
	"locplot/internal/shell"

	"github.com/spf13/cobra"
)

// countOptions 存放 count 命令的可配置参数。
type countOptions struct {
	format   string
	counter  string
	excludes []string
}

// newCountCmd 创建 count 子命令：在当前工作区上直接运行一次计数器，不做任何检出。
// 示例：
//
//	locplot count .
//	locplot count ./project --format json --exclude 'vendor/*'
func newCountCmd(global *globalOptions) *cobra.Command {
	options := countOptions{format: "table"}

	countCmd := &cobra.Command{
		Use:   "count [path]",
		Short: "统计目录当前内容的按语言行数",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" {
				return errors.New("unsupported format, allowed values: table, json")
			}

			cfg, logger, err := global.load(cmd)
			if err != nil {
				return err
			}

			kind := cfg.Counter.Kind
			if cmd.Flags().Changed("counter") {
				kind = options.counter
			}
			lineCounter, err := counter.New(kind, shell.NewSubprocess(cfg.Counter.Timeout, logger), cfg.Counter.Binary)
			if err != nil {
				return err
			}

			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			excludes := append(append([]string(nil), cfg.Excludes...), options.excludes...)
			counts, err := lineCounter.Count(cmd.Context(), path, excludes)
			if err != nil {
				return err
			}

			if format == "json" {
				return report.PrintJSON(cmd.OutOrStdout(), counts)
			}
			return report.PrintCounts(cmd.OutOrStdout(), counts)
		},
	}

	countCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: table 或 json")
	countCmd.Flags().StringVar(&options.counter, "counter", "tokei", "计数器: tokei 或 scc")
	countCmd.Flags().StringArrayVarP(&options.excludes, "exclude", "e", nil, "排除的 glob，可重复指定")

	return countCmd
}
