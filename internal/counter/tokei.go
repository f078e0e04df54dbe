package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"locplot/internal/model"
	"locplot/internal/shell"
)

// tokeiTotalKey 是新版 tokei 附加的汇总项，它不是一种语言。
const tokeiTotalKey = "Total"

// Tokei 调用 tokei 统计行数。
type Tokei struct {
	executor shell.Executor
	binary   string
}

// NewTokei 创建 tokei 计数器。
func NewTokei(executor shell.Executor, binary string) *Tokei {
	if strings.TrimSpace(binary) == "" {
		binary = "tokei"
	}
	return &Tokei{
		executor: executor,
		binary:   binary,
	}
}

// Name 返回计数器名称。
func (t *Tokei) Name() string {
	return "tokei"
}

// Count 执行 `tokei --output json [--exclude glob]...` 并解析结果。
func (t *Tokei) Count(ctx context.Context, dir string, excludes []string) ([]model.LanguageCount, error) {
	args := []string{"--output", "json"}
	for _, pattern := range excludes {
		args = append(args, "--exclude", pattern)
	}

	output, err := t.executor.Run(ctx, dir, t.binary, args...)
	if err != nil {
		return nil, err
	}
	return ParseTokei([]byte(output))
}

// tokeiEntry 只保留需要的字段，blanks/reports/children 等其它字段忽略。
type tokeiEntry struct {
	Code     int64 `json:"code"`
	Comments int64 `json:"comments"`
}

// ParseTokei 把 tokei 的 JSON 输出解析为按出现顺序排列的语言统计。
func ParseTokei(data []byte) ([]model.LanguageCount, error) {
	if err := validate("tokei", tokeiValidator, data); err != nil {
		return nil, err
	}

	// 用 Token 流逐个读取键，保留 JSON 对象中的原始顺序。
	decoder := json.NewDecoder(bytes.NewReader(data))
	if _, err := decoder.Token(); err != nil {
		return nil, &MalformedOutputError{Tool: "tokei", Reason: "read object start", Err: err}
	}

	result := make([]model.LanguageCount, 0)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, &MalformedOutputError{Tool: "tokei", Reason: "read language key", Err: err}
		}

		language, ok := token.(string)
		if !ok {
			return nil, &MalformedOutputError{Tool: "tokei", Reason: fmt.Sprintf("unexpected key %v", token)}
		}

		var entry tokeiEntry
		if err := decoder.Decode(&entry); err != nil {
			return nil, &MalformedOutputError{Tool: "tokei", Reason: "decode " + language, Err: err}
		}

		if language == tokeiTotalKey {
			continue
		}

		result = append(result, model.LanguageCount{
			Language: language,
			Code:     entry.Code,
			Comments: entry.Comments,
		})
	}

	return result, nil
}
