// Package counter 通过外部代码统计工具获取按语言划分的行数。
// 工具输出在边界处一次性解析成 model.LanguageCount，上层不再接触原始 JSON。
package counter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"locplot/internal/model"
	"locplot/internal/shell"
)

// ErrUnknownCounter 表示配置了未知的计数器类型。
var ErrUnknownCounter = errors.New("unknown counter")

// Counter 定义外部计数器接口。
type Counter interface {
	// Name 返回计数器名称（tokei、scc）。
	Name() string
	// Count 在 dir 中统计行数，excludes 中的 glob 原样透传给工具。
	// 返回值保持工具输出中的语言顺序。
	Count(ctx context.Context, dir string, excludes []string) ([]model.LanguageCount, error)
}

// MalformedOutputError 表示计数器输出无法按约定结构解析。
type MalformedOutputError struct {
	Tool   string
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s output: %s: %v", e.Tool, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s output: %s", e.Tool, e.Reason)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

type factory func(executor shell.Executor, binary string) Counter

var factories = map[string]factory{
	"tokei": func(executor shell.Executor, binary string) Counter { return NewTokei(executor, binary) },
	"scc":   func(executor shell.Executor, binary string) Counter { return NewSCC(executor, binary) },
}

// Kinds 返回支持的计数器名称（字母序）。
func Kinds() []string {
	result := make([]string, 0, len(factories))
	for name := range factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// New 根据名称创建计数器；binary 为空时使用工具默认的可执行文件名。
func New(kind string, executor shell.Executor, binary string) (Counter, error) {
	create, ok := factories[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownCounter, kind, strings.Join(Kinds(), ", "))
	}
	return create(executor, binary), nil
}
