// Package report 提供 locplot 的文本输出与数据导出能力。
// 当前实现支持控制台表格、JSON 输出，以及 JSON/YAML 文件导出。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"locplot/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/montanaflynn/stats"
	"gopkg.in/yaml.v3"
)

// SeriesSummary 是单个序列的汇总指标。
type SeriesSummary struct {
	Label  string
	Points int
	First  int64
	Last   int64
	Peak   int64
	Mean   float64
	Median float64
}

// Summarize 计算每个序列的首末值、峰值、均值和中位数，顺序与集合一致。
func Summarize(collection *model.StatsCollection) ([]SeriesSummary, error) {
	all := collection.Series()
	result := make([]SeriesSummary, 0, len(all))

	for _, series := range all {
		points := sumPerTag(series.Points)
		summary := SeriesSummary{Label: series.Label, Points: len(points)}
		if len(points) == 0 {
			result = append(result, summary)
			continue
		}

		data := make(stats.Float64Data, len(points))
		for i, point := range points {
			data[i] = float64(point.Value)
		}

		peak, err := data.Max()
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", series.Label, err)
		}
		mean, err := data.Mean()
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", series.Label, err)
		}
		median, err := data.Median()
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", series.Label, err)
		}

		summary.First = points[0].Value
		summary.Last = points[len(points)-1].Value
		summary.Peak = int64(peak)
		summary.Mean = mean
		summary.Median = median
		result = append(result, summary)
	}

	return result, nil
}

// sumPerTag 把同一标签的多个点合并为一个，保持标签首次出现的顺序。
// Comments 序列每种语言各追加一个点，需要先合并才是该版本的注释总数。
func sumPerTag(points []model.Point) []model.Point {
	result := make([]model.Point, 0, len(points))
	index := make(map[model.Tag]int, len(points))
	for _, point := range points {
		if i, ok := index[point.Tag]; ok {
			result[i].Value += point.Value
			continue
		}
		index[point.Tag] = len(result)
		result = append(result, point)
	}
	return result
}

// PrintSummary 使用表格展示每个序列的变化概况。
func PrintSummary(writer io.Writer, collection *model.StatsCollection) error {
	summaries, err := Summarize(collection)
	if err != nil {
		return err
	}

	tags := collection.Tags()

	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Language", "Releases", "First", "Last", "Peak", "Mean", "Median"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, item := range summaries {
		tbl.AppendRow(table.Row{
			item.Label,
			item.Points,
			humanize.Comma(item.First),
			humanize.Comma(item.Last),
			humanize.Comma(item.Peak),
			humanize.CommafWithDigits(roundTenth(item.Mean), 1),
			humanize.CommafWithDigits(roundTenth(item.Median), 1),
		})
	}

	if len(tags) > 0 {
		tbl.AppendFooter(table.Row{fmt.Sprintf("%s .. %s", tags[0], tags[len(tags)-1]), len(tags)})
	}

	tbl.Render()
	return nil
}

// roundTenth 四舍五入到一位小数；CommafWithDigits 本身只截断。
func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}

// PrintCounts 以表格展示单次测量结果。
func PrintCounts(writer io.Writer, counts []model.LanguageCount) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Language", "Code", "Comments"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	var code, comments int64
	for _, item := range counts {
		code += item.Code
		comments += item.Comments
		tbl.AppendRow(table.Row{item.Language, humanize.Comma(item.Code), humanize.Comma(item.Comments)})
	}
	tbl.AppendFooter(table.Row{"Total", humanize.Comma(code), humanize.Comma(comments)})

	tbl.Render()
	return nil
}

// PrintJSON 把任意结果按易读 JSON 输出到 writer。
func PrintJSON(writer io.Writer, value any) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteDataFile 将统计集合导出到 path，按后缀选择 JSON 或 YAML。
// 如果目录不存在会自动创建。
func WriteDataFile(path string, collection *model.StatsCollection) error {
	document := collection.Document()

	var (
		content []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		content, err = yaml.Marshal(document)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
	case ".json":
		content, err = json.MarshalIndent(document, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported data file extension %q, allowed: .json, .yaml, .yml", filepath.Ext(path))
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
