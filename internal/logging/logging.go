// Package logging 构造 locplot 使用的结构化 logger。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel 解析 debug/info/warn/error（大小写不敏感）。
func ParseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}

// New 按格式（text 或 json）创建写入 writer 的 logger。
func New(writer io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		handler = slog.NewTextHandler(writer, options)
	case "json":
		handler = slog.NewJSONHandler(writer, options)
	default:
		return nil, fmt.Errorf("unsupported log format %q, allowed: text, json", format)
	}

	return slog.New(handler), nil
}
