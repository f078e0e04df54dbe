package model

// CommentsLabel 是注释行聚合序列使用的伪语言名称。
const CommentsLabel = "Comments"

// Point 是序列中的一个 (标签, 数值) 点。
type Point struct {
	Tag   Tag   `json:"tag" yaml:"tag"`
	Value int64 `json:"value" yaml:"value"`
}

// Series 表示某个语言（或 Comments）随标签变化的时间序列。
// 序列是稀疏的：某个标签下缺失的语言不会补零。
type Series struct {
	Label  string  `json:"label" yaml:"label"`
	Points []Point `json:"points" yaml:"points"`
}

// Values 返回序列中全部数值，顺序与 Points 一致。
func (s Series) Values() []int64 {
	result := make([]int64, len(s.Points))
	for i, point := range s.Points {
		result[i] = point.Value
	}
	return result
}

// StatsCollection 是按插入顺序保存的 label -> Series 映射。
// 插入顺序决定了图表中的堆叠顺序，因此不能用普通 map 直接遍历。
type StatsCollection struct {
	tags   TagSet
	order  []string
	series map[string]*Series
}

// NewStatsCollection 创建一个空集合。
func NewStatsCollection() *StatsCollection {
	return &StatsCollection{
		series: make(map[string]*Series),
	}
}

// AddTag 记录一个已遍历的标签，作为全部序列共享的 X 轴。
func (c *StatsCollection) AddTag(tag Tag) {
	c.tags = append(c.tags, tag)
}

// Append 向 label 对应的序列追加一个点；label 首次出现时按当前位置登记顺序。
func (c *StatsCollection) Append(label string, tag Tag, value int64) {
	item, ok := c.series[label]
	if !ok {
		item = &Series{Label: label}
		c.series[label] = item
		c.order = append(c.order, label)
	}
	item.Points = append(item.Points, Point{Tag: tag, Value: value})
}

// Tags 返回共享 X 轴的副本。
func (c *StatsCollection) Tags() TagSet {
	return append(TagSet(nil), c.tags...)
}

// Labels 按插入顺序返回全部序列名称。
func (c *StatsCollection) Labels() []string {
	return append([]string(nil), c.order...)
}

// Len 返回序列数量。
func (c *StatsCollection) Len() int {
	return len(c.order)
}

// Get 返回指定序列的副本。
func (c *StatsCollection) Get(label string) (Series, bool) {
	item, ok := c.series[label]
	if !ok {
		return Series{}, false
	}
	return copySeries(item), true
}

// Series 按插入顺序返回全部序列的副本。
func (c *StatsCollection) Series() []Series {
	result := make([]Series, 0, len(c.order))
	for _, label := range c.order {
		result = append(result, copySeries(c.series[label]))
	}
	return result
}

// Document 把集合转换为便于 JSON/YAML 导出的结构。
func (c *StatsCollection) Document() StatsDocument {
	return StatsDocument{
		Tags:   c.Tags(),
		Series: c.Series(),
	}
}

// StatsDocument 是 StatsCollection 的导出形态。
type StatsDocument struct {
	Tags   TagSet   `json:"tags" yaml:"tags"`
	Series []Series `json:"series" yaml:"series"`
}

func copySeries(item *Series) Series {
	return Series{
		Label:  item.Label,
		Points: append([]Point(nil), item.Points...),
	}
}
