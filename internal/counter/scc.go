package counter

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"locplot/internal/model"
	"locplot/internal/shell"
)

// SCC 调用 scc 统计行数。
type SCC struct {
	executor shell.Executor
	binary   string
}

// NewSCC 创建 scc 计数器。
func NewSCC(executor shell.Executor, binary string) *SCC {
	if strings.TrimSpace(binary) == "" {
		binary = "scc"
	}
	return &SCC{
		executor: executor,
		binary:   binary,
	}
}

// Name 返回计数器名称。
func (s *SCC) Name() string {
	return "scc"
}

// Count 执行 `scc --format json [--not-match regex]...`。
// scc 只接受正则，因此 glob 会先转换为等价的正则表达式。
func (s *SCC) Count(ctx context.Context, dir string, excludes []string) ([]model.LanguageCount, error) {
	args := []string{"--format", "json"}
	for _, pattern := range excludes {
		args = append(args, "--not-match", GlobToRegexp(pattern))
	}

	output, err := s.executor.Run(ctx, dir, s.binary, args...)
	if err != nil {
		return nil, err
	}
	return ParseSCC([]byte(output))
}

type sccEntry struct {
	Name    string `json:"Name"`
	Code    int64  `json:"Code"`
	Comment int64  `json:"Comment"`
}

// ParseSCC 解析 scc 的 JSON 数组输出，保持数组顺序。
func ParseSCC(data []byte) ([]model.LanguageCount, error) {
	if err := validate("scc", sccValidator, data); err != nil {
		return nil, err
	}

	var entries []sccEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &MalformedOutputError{Tool: "scc", Reason: "decode", Err: err}
	}

	result := make([]model.LanguageCount, 0, len(entries))
	for _, entry := range entries {
		result = append(result, model.LanguageCount{
			Language: entry.Name,
			Code:     entry.Code,
			Comments: entry.Comment,
		})
	}
	return result, nil
}

// GlobToRegexp 把 glob 转为锚定的正则：** 匹配任意字符，* 与 ? 不跨越路径分隔符。
func GlobToRegexp(glob string) string {
	var builder strings.Builder
	builder.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch {
		case strings.HasPrefix(glob[i:], "**"):
			builder.WriteString(".*")
			i++
		case glob[i] == '*':
			builder.WriteString("[^/]*")
		case glob[i] == '?':
			builder.WriteString("[^/]")
		default:
			builder.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}

	builder.WriteString("$")
	return builder.String()
}
