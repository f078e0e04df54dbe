package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatsCollectionKeepsInsertionOrder 验证序列顺序等于首次出现顺序，而不是字母序。
func TestStatsCollectionKeepsInsertionOrder(t *testing.T) {
	collection := NewStatsCollection()
	collection.Append("Rust", "v1", 10)
	collection.Append("Go", "v1", 20)
	collection.Append(CommentsLabel, "v1", 3)
	collection.Append("Go", "v2", 25)
	collection.Append("C", "v2", 1)

	assert.Equal(t, []string{"Rust", "Go", CommentsLabel, "C"}, collection.Labels())
	assert.Equal(t, 4, collection.Len())

	goSeries, ok := collection.Get("Go")
	require.True(t, ok)
	assert.Equal(t, []Point{{Tag: "v1", Value: 20}, {Tag: "v2", Value: 25}}, goSeries.Points)
	assert.Equal(t, []int64{20, 25}, goSeries.Values())
}

// TestStatsCollectionReturnsCopies 验证调用方修改返回值不会污染集合内部状态。
func TestStatsCollectionReturnsCopies(t *testing.T) {
	collection := NewStatsCollection()
	collection.AddTag("v1")
	collection.Append("Go", "v1", 1)

	series := collection.Series()
	series[0].Points[0].Value = 99
	tags := collection.Tags()
	tags[0] = "changed"

	stored, ok := collection.Get("Go")
	require.True(t, ok)
	assert.Equal(t, int64(1), stored.Points[0].Value)
	assert.Equal(t, TagSet{"v1"}, collection.Tags())

	_, ok = collection.Get("Missing")
	assert.False(t, ok)
}

// TestMeasurementTotals 验证单次测量的汇总。
func TestMeasurementTotals(t *testing.T) {
	measurement := Measurement{
		Tag: "v1",
		Languages: []LanguageCount{
			{Language: "Go", Code: 100, Comments: 10},
			{Language: "Markdown", Code: 5},
		},
	}

	assert.Equal(t, int64(105), measurement.TotalCode())
	assert.Equal(t, int64(10), measurement.TotalComments())
	assert.Equal(t, []string{"a", "b"}, TagSet{"a", "b"}.Strings())
}
