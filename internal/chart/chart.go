// Package chart 把 StatsCollection 渲染为自包含的堆叠柱状图 HTML。
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"locplot/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missingValue 是 ECharts 约定的空数据占位，稀疏序列在缺失标签处不画柱。
const (
	stackName          = "loc"
	missingValue       = "-"
	dataZoomEndPercent = 100
)

// Options 控制图表外观。
type Options struct {
	Title  string
	Theme  Theme
	Width  string
	Height string
}

// DefaultOptions 返回默认外观。
func DefaultOptions() Options {
	return Options{
		Title:  "Lines of code",
		Theme:  ThemeLight,
		Width:  "100%",
		Height: "600px",
	}
}

// Renderer 负责把统计集合转换为 go-echarts 柱状图。
type Renderer struct {
	options Options
	palette palette
}

// NewRenderer 创建渲染器，空字段回退为默认值。
func NewRenderer(options Options) *Renderer {
	defaults := DefaultOptions()
	if options.Title == "" {
		options.Title = defaults.Title
	}
	if options.Theme == "" {
		options.Theme = defaults.Theme
	}
	if options.Width == "" {
		options.Width = defaults.Width
	}
	if options.Height == "" {
		options.Height = defaults.Height
	}
	return &Renderer{
		options: options,
		palette: paletteFor(options.Theme),
	}
}

// Build 构造堆叠柱状图：每个序列一组柱，X 轴按标签遍历顺序排列。
func (r *Renderer) Build(collection *model.StatsCollection) *charts.Bar {
	tags := collection.Tags()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       r.options.Title,
			Width:           r.options.Width,
			Height:          r.options.Height,
			BackgroundColor: r.palette.Background,
			Theme:           r.palette.EChartsTheme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         r.options.Title,
			Subtitle:      fmt.Sprintf("%d releases", len(tags)),
			Left:          "center",
			TitleStyle:    &opts.TextStyle{Color: r.palette.Text},
			SubtitleStyle: &opts.TextStyle{Color: r.palette.TextMuted},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Type:      "scroll",
			Top:       "8%",
			Left:      "center",
			TextStyle: &opts.TextStyle{Color: r.palette.TextMuted},
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: dataZoomEndPercent},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "release",
			AxisLabel: &opts.AxisLabel{Color: r.palette.TextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: r.palette.Axis}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "lines",
			AxisLabel: &opts.AxisLabel{Color: r.palette.TextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: r.palette.Axis}},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: r.palette.Grid},
			},
		}),
	)

	bar.SetXAxis(tags.Strings())

	for _, series := range collection.Series() {
		bar.AddSeries(series.Label, alignToTags(series, tags),
			charts.WithBarChartOpts(opts.BarChart{Stack: stackName}),
		)
	}

	return bar
}

// alignToTags 把稀疏序列展开到完整 X 轴上；同一标签出现多次时数值相加。
func alignToTags(series model.Series, tags model.TagSet) []opts.BarData {
	values := make(map[model.Tag]int64, len(series.Points))
	for _, point := range series.Points {
		values[point.Tag] += point.Value
	}

	data := make([]opts.BarData, len(tags))
	for i, tag := range tags {
		value, ok := values[tag]
		if !ok {
			data[i] = opts.BarData{Value: missingValue}
			continue
		}
		data[i] = opts.BarData{Name: string(tag), Value: value}
	}
	return data
}

// Render 把图表写入 writer。
func (r *Renderer) Render(writer io.Writer, collection *model.StatsCollection) error {
	if err := r.Build(collection).Render(writer); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteFile 把图表写入 path，父目录不存在时自动创建。
func (r *Renderer) WriteFile(path string, collection *model.StatsCollection) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	renderErr := r.Render(file, collection)
	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return fmt.Errorf("close output file: %w", closeErr)
	}
	return nil
}
