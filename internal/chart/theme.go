package chart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Theme 是图表配色方案名称。
type Theme string

// 内置主题。
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// palette 保存一个主题用到的颜色。
type palette struct {
	EChartsTheme string
	Background   string
	Text         string
	TextMuted    string
	Axis         string
	Grid         string
}

var palettes = map[Theme]palette{
	ThemeLight: {
		EChartsTheme: types.ThemeWesteros,
		Background:   "#ffffff",
		Text:         "#1f2328",
		TextMuted:    "#57606a",
		Axis:         "#8c959f",
		Grid:         "#eaeef2",
	},
	ThemeDark: {
		EChartsTheme: types.ThemeChalk,
		Background:   "#0d1117",
		Text:         "#e6edf3",
		TextMuted:    "#8b949e",
		Axis:         "#484f58",
		Grid:         "#21262d",
	},
}

// ParseTheme 把字符串解析为已知主题，大小写不敏感。
func ParseTheme(value string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(value)))
	if theme == "" {
		return ThemeLight, nil
	}
	if _, ok := palettes[theme]; !ok {
		return "", fmt.Errorf("unknown theme %q (allowed: %s)", value, strings.Join(Themes(), ", "))
	}
	return theme, nil
}

// Themes 返回内置主题名称。
func Themes() []string {
	result := make([]string, 0, len(palettes))
	for theme := range palettes {
		result = append(result, string(theme))
	}
	sort.Strings(result)
	return result
}

func paletteFor(theme Theme) palette {
	if item, ok := palettes[theme]; ok {
		return item
	}
	return palettes[ThemeLight]
}
