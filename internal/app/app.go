// Package app 编排一次完整的运行：引导仓库、遍历标签、聚合、渲染，并在任何情况下恢复原始 ref。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"locplot/internal/aggregate"
	"locplot/internal/chart"
	"locplot/internal/counter"
	"locplot/internal/git"
	"locplot/internal/measure"
	"locplot/internal/metrics"
	"locplot/internal/model"
	"locplot/internal/repo"
	"locplot/internal/report"
	"locplot/internal/tags"

	"github.com/fatih/color"
)

// Options 是一次 plot 运行的参数。
type Options struct {
	Repository   string
	Output       string
	Excludes     []string
	Releases     int
	KeepClone    bool
	CleanIgnored bool
	// DataFile 非空时额外导出 JSON/YAML 数据。
	DataFile string
	// MetricsFile 非空时额外写出 Prometheus 文本格式指标。
	MetricsFile string
	// Summary 为 true 时在成功后打印汇总表格。
	Summary bool
	Chart   chart.Options
}

// Runner 是运行控制器。
type Runner struct {
	git     *git.Client
	counter counter.Counter
	stdout  io.Writer
	logger  *slog.Logger
}

// NewRunner 创建 Runner。stdout 为 nil 时写到 os.Stdout。
func NewRunner(client *git.Client, lineCounter counter.Counter, stdout io.Writer, logger *slog.Logger) *Runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		git:     client,
		counter: lineCounter,
		stdout:  stdout,
		logger:  logger,
	}
}

// Run 执行一次完整运行。
//
// 引导成功之后，不论遍历、渲染是否失败，都会通过 defer 恢复原始 ref；
// 运行错误与恢复错误同时存在时用 errors.Join 一起返回，由调用方负责打印。
// 没有任何发布标签时打印提示并返回 nil，不生成图表。
func (r *Runner) Run(ctx context.Context, options Options) (err error) {
	handle, err := r.bootstrap(ctx, options.Repository, options.KeepClone)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := handle.Release(ctx); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	tagSet, err := tags.NewSelector(r.git, options.Releases).Select(ctx, handle.Path)
	if errors.Is(err, tags.ErrNoReleases) {
		color.New(color.FgYellow).Fprintln(r.stdout, "No releases found!")
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info("traversing releases",
		"count", len(tagSet),
		"first", tagSet[0],
		"last", tagSet[len(tagSet)-1],
		"counter", r.counter.Name(),
	)

	measurer := measure.NewMeasurer(r.git, r.counter, measure.Options{CleanIgnored: options.CleanIgnored}, r.logger)
	collection, err := aggregate.NewAggregator(measurer, r.logger).Aggregate(ctx, handle.Path, tagSet, options.Excludes)
	if err != nil {
		return err
	}

	return r.publish(options, collection)
}

// Tags 返回 plot 将会遍历的标签集合，期间同样保证恢复原始 ref。
func (r *Runner) Tags(ctx context.Context, repository string, releases int) (tagSet model.TagSet, err error) {
	handle, err := r.bootstrap(ctx, repository, false)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := handle.Release(ctx); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	return tags.NewSelector(r.git, releases).Select(ctx, handle.Path)
}

func (r *Runner) bootstrap(ctx context.Context, repository string, keepClone bool) (*repo.Handle, error) {
	bootstrapper := repo.NewBootstrapper(r.git, repo.Options{KeepClone: keepClone}, r.logger)
	handle, err := bootstrapper.Bootstrap(ctx, repository)
	if err != nil {
		return nil, fmt.Errorf("bootstrap %s: %w", repository, err)
	}
	if handle.Temporary && keepClone {
		color.New(color.FgCyan).Fprintf(r.stdout, "Keeping clone at %s\n", handle.Path)
	}
	return handle, nil
}

// publish 写出图表以及可选的数据文件、指标文件和汇总表。
func (r *Runner) publish(options Options, collection *model.StatsCollection) error {
	output := strings.TrimSpace(options.Output)
	if err := chart.NewRenderer(options.Chart).WriteFile(output, collection); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(r.stdout, "Chart written to %s\n", output)

	if options.DataFile != "" {
		if err := report.WriteDataFile(options.DataFile, collection); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(r.stdout, "Data exported to %s\n", options.DataFile)
	}

	if options.MetricsFile != "" {
		if err := metrics.WriteTextfile(options.MetricsFile, options.Repository, collection); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(r.stdout, "Metrics written to %s\n", options.MetricsFile)
	}

	if options.Summary {
		return report.PrintSummary(r.stdout, collection)
	}
	return nil
}
