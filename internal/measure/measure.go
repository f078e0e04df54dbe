// Package measure 在单个标签上测量代码行数。
package measure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"locplot/internal/counter"
	"locplot/internal/model"
)

// Workspace 是测量需要的工作副本操作。git.Client 满足该接口。
type Workspace interface {
	Checkout(ctx context.Context, dir string, ref string) error
	Clean(ctx context.Context, dir string, ignored bool) error
}

// Options 控制测量行为。
type Options struct {
	// CleanIgnored 为 true 时 clean 同时删除被 .gitignore 忽略的文件。
	CleanIgnored bool
}

// Measurer 负责 checkout -> clean -> count 三步。
// 它会原地修改共享工作副本，不能对同一目录并发调用。
type Measurer struct {
	workspace Workspace
	counter   counter.Counter
	options   Options
	logger    *slog.Logger
}

// NewMeasurer 创建 Measurer。
func NewMeasurer(workspace Workspace, lineCounter counter.Counter, options Options, logger *slog.Logger) *Measurer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Measurer{
		workspace: workspace,
		counter:   lineCounter,
		options:   options,
		logger:    logger,
	}
}

// Measure 检出 tag、清理未跟踪文件，然后调用计数器。
func (m *Measurer) Measure(ctx context.Context, dir string, tag model.Tag, excludes []string) (model.Measurement, error) {
	started := time.Now()

	if err := m.workspace.Checkout(ctx, dir, string(tag)); err != nil {
		return model.Measurement{}, err
	}

	// 上一个标签留下的生成文件会污染统计结果，必须先清掉。
	if err := m.workspace.Clean(ctx, dir, m.options.CleanIgnored); err != nil {
		return model.Measurement{}, err
	}

	counts, err := m.counter.Count(ctx, dir, excludes)
	if err != nil {
		return model.Measurement{}, fmt.Errorf("count %s at %s: %w", m.counter.Name(), tag, err)
	}

	measurement := model.Measurement{Tag: tag, Languages: counts}
	m.logger.Info("measured release",
		"tag", tag,
		"languages", len(counts),
		"code", measurement.TotalCode(),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return measurement, nil
}
