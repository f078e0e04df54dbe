// Package aggregate 把逐标签的测量结果折叠为按语言划分的时间序列。
package aggregate

import (
	"context"
	"fmt"
	"log/slog"

	"locplot/internal/model"
)

// Measurer 是聚合器依赖的单标签测量接口。measure.Measurer 满足该接口。
type Measurer interface {
	Measure(ctx context.Context, dir string, tag model.Tag, excludes []string) (model.Measurement, error)
}

// Aggregator 顺序遍历 TagSet 并累积 StatsCollection。
type Aggregator struct {
	measurer Measurer
	logger   *slog.Logger
}

// NewAggregator 创建 Aggregator。
func NewAggregator(measurer Measurer, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		measurer: measurer,
		logger:   logger,
	}
}

// Aggregate 按 tagSet 顺序逐个测量并折叠。任何一个标签失败都会中止整个聚合。
func (a *Aggregator) Aggregate(ctx context.Context, dir string, tagSet model.TagSet, excludes []string) (*model.StatsCollection, error) {
	collection := model.NewStatsCollection()

	for index, tag := range tagSet {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("aggregate interrupted before %s: %w", tag, err)
		}

		a.logger.Debug("measuring release", "tag", tag, "index", index+1, "total", len(tagSet))

		measurement, err := a.measurer.Measure(ctx, dir, tag, excludes)
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", tag, err)
		}

		Fold(collection, measurement)
	}

	return collection, nil
}

// Fold 把一次测量追加到集合中。
//
// 规则：
// - 每种语言追加 (tag, code)，即使 code 为 0
// - comments > 0 时额外向 Comments 序列追加 (tag, comments)
// - 语言缺席的标签不补零
func Fold(collection *model.StatsCollection, measurement model.Measurement) {
	collection.AddTag(measurement.Tag)

	for _, item := range measurement.Languages {
		collection.Append(item.Language, measurement.Tag, item.Code)
		if item.Comments > 0 {
			collection.Append(model.CommentsLabel, measurement.Tag, item.Comments)
		}
	}
}
