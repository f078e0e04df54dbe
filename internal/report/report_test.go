package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"locplot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleCollection() *model.StatsCollection {
	collection := model.NewStatsCollection()
	collection.AddTag("v1.0")
	collection.AddTag("v1.1")
	collection.AddTag("v2.0")
	collection.Append("Go", "v1.0", 100)
	collection.Append("Go", "v1.1", 1200)
	collection.Append("Go", "v2.0", 1500)
	collection.Append("Markdown", "v1.1", 5)
	return collection
}

func TestSummarize(t *testing.T) {
	summaries, err := Summarize(sampleCollection())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	goSummary := summaries[0]
	assert.Equal(t, "Go", goSummary.Label)
	assert.Equal(t, 3, goSummary.Points)
	assert.Equal(t, int64(100), goSummary.First)
	assert.Equal(t, int64(1500), goSummary.Last)
	assert.Equal(t, int64(1500), goSummary.Peak)
	assert.InDelta(t, 933.33, goSummary.Mean, 0.01)
	assert.InDelta(t, 1200, goSummary.Median, 0.001)

	assert.Equal(t, "Markdown", summaries[1].Label)
	assert.Equal(t, 1, summaries[1].Points)
}

func TestPrintSummary(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintSummary(&buffer, sampleCollection()))

	output := buffer.String()
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "1,500")
	assert.Contains(t, output, "v1.0 .. v2.0")
}

// TestSummarizeSumsCommentsPerTag 覆盖多语言注释：同一标签下的 Comments 点先合并再统计。
func TestSummarizeSumsCommentsPerTag(t *testing.T) {
	collection := model.NewStatsCollection()
	collection.AddTag("v1.0")
	collection.AddTag("v1.1")
	collection.Append("Go", "v1.0", 100)
	collection.Append(model.CommentsLabel, "v1.0", 10)
	collection.Append("Go", "v1.1", 120)
	collection.Append(model.CommentsLabel, "v1.1", 10)
	collection.Append("Shell", "v1.1", 30)
	collection.Append(model.CommentsLabel, "v1.1", 3)

	summaries, err := Summarize(collection)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	comments := summaries[1]
	assert.Equal(t, model.CommentsLabel, comments.Label)
	assert.Equal(t, 2, comments.Points)
	assert.Equal(t, int64(10), comments.First)
	assert.Equal(t, int64(13), comments.Last)
	assert.Equal(t, int64(13), comments.Peak)
	assert.InDelta(t, 11.5, comments.Mean, 0.001)
	assert.InDelta(t, 11.5, comments.Median, 0.001)
}

func TestPrintSummaryRoundsMean(t *testing.T) {
	collection := model.NewStatsCollection()
	for i, value := range []int64{7, 8, 8} {
		tag := model.Tag(fmt.Sprintf("v%d", i+1))
		collection.AddTag(tag)
		collection.Append("Go", tag, value)
	}

	var buffer bytes.Buffer
	require.NoError(t, PrintSummary(&buffer, collection))

	assert.Contains(t, buffer.String(), "7.7")
	assert.NotContains(t, buffer.String(), "7.6")
}

func TestPrintCounts(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintCounts(&buffer, []model.LanguageCount{
		{Language: "Go", Code: 12000, Comments: 300},
		{Language: "YAML", Code: 40},
	}))

	output := buffer.String()
	assert.Contains(t, output, "12,000")
	assert.Contains(t, output, "12,040")
}

func TestWriteDataFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "stats.json")
	require.NoError(t, WriteDataFile(path, sampleCollection()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var document model.StatsDocument
	require.NoError(t, json.Unmarshal(content, &document))
	assert.Equal(t, sampleCollection().Document(), document)
}

func TestWriteDataFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.yml")
	require.NoError(t, WriteDataFile(path, sampleCollection()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var document model.StatsDocument
	require.NoError(t, yaml.Unmarshal(content, &document))
	assert.Equal(t, sampleCollection().Document(), document)
}

func TestWriteDataFileRejectsUnknownExtension(t *testing.T) {
	err := WriteDataFile(filepath.Join(t.TempDir(), "stats.csv"), sampleCollection())
	assert.ErrorContains(t, err, "unsupported data file extension")
}
