// Package model 定义 locplot 的核心数据模型。
// 这些结构会被计数器、聚合器、图表层和命令层共同使用。
package model

// Tag 表示一个发布标签（例如 v1.2.0）。
// 标签是仓库历史中的不可变标识，排序交给 git 的 v:refname 语义完成。
type Tag string

// TagSet 是按版本升序排列、截取最近 N 个之后的标签序列。
type TagSet []Tag

// Strings 返回标签的字符串形式，图表 X 轴直接使用该结果。
func (s TagSet) Strings() []string {
	result := make([]string, len(s))
	for i, tag := range s {
		result[i] = string(tag)
	}
	return result
}

// LanguageCount 表示某个标签下单一语言的行数统计。
//
// 注意：
// - 每个 (Tag, Language) 组合都会生成新的值，生成后不再修改
// - Code/Comments 均为非负整数，由计数器解析阶段保证
type LanguageCount struct {
	Language string `json:"language" yaml:"language"`
	Code     int64  `json:"code" yaml:"code"`
	Comments int64  `json:"comments" yaml:"comments"`
}

// Measurement 记录一次单标签测量的完整结果。
// Languages 保留计数器输出中的语言顺序，聚合时依赖该顺序决定堆叠次序。
type Measurement struct {
	Tag       Tag             `json:"tag" yaml:"tag"`
	Languages []LanguageCount `json:"languages" yaml:"languages"`
}

// TotalCode 返回该次测量的代码行总和。
func (m Measurement) TotalCode() int64 {
	var total int64
	for _, item := range m.Languages {
		total += item.Code
	}
	return total
}

// TotalComments 返回该次测量的注释行总和。
func (m Measurement) TotalComments() int64 {
	var total int64
	for _, item := range m.Languages {
		total += item.Comments
	}
	return total
}
