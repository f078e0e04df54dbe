// Package config 负责加载和校验 locplot 的运行配置。
// 优先级：命令行参数 > 环境变量 LOCPLOT_* > 配置文件 locplot.yaml > 默认值。
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"locplot/internal/chart"
	"locplot/internal/counter"
	"locplot/internal/logging"
	"locplot/internal/tags"

	"github.com/spf13/viper"
)

// 配置校验失败时返回的哨兵错误。
var (
	ErrInvalidReleases = errors.New("releases must be positive")
	ErrUnknownCounter  = errors.New("unknown counter kind")
	ErrUnknownTheme    = errors.New("unknown chart theme")
	ErrInvalidTimeout  = errors.New("timeout must not be negative")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidOutput   = errors.New("output path must not be empty")
)

const (
	envPrefix         = "LOCPLOT"
	defaultConfigName = "locplot"
	defaultOutput     = "loc.html"
	defaultTimeout    = "30m"
)

// Config 是全部运行配置。
type Config struct {
	Releases  int           `mapstructure:"releases"`
	Output    string        `mapstructure:"output"`
	KeepClone bool          `mapstructure:"keep_clone"`
	Excludes  []string      `mapstructure:"excludes"`
	Git       GitConfig     `mapstructure:"git"`
	Counter   CounterConfig `mapstructure:"counter"`
	Chart     ChartConfig   `mapstructure:"chart"`
	Logging   LoggingConfig `mapstructure:"logging"`
}

// GitConfig 控制 git 子进程。
type GitConfig struct {
	Binary       string        `mapstructure:"binary"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CleanIgnored bool          `mapstructure:"clean_ignored"`
}

// CounterConfig 控制外部计数器。
type CounterConfig struct {
	Kind    string        `mapstructure:"kind"`
	Binary  string        `mapstructure:"binary"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ChartConfig 控制图表外观。
type ChartConfig struct {
	Title  string `mapstructure:"title"`
	Theme  string `mapstructure:"theme"`
	Width  string `mapstructure:"width"`
	Height string `mapstructure:"height"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 读取配置文件与环境变量并返回校验后的配置。
// configPath 为空时在当前目录和 $HOME/.config/locplot 中查找 locplot.yaml，找不到不算错误。
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(defaultConfigName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME/.config/locplot")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if readErr := viperCfg.ReadInConfig(); readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("releases", tags.DefaultLimit)
	viperCfg.SetDefault("output", defaultOutput)
	viperCfg.SetDefault("keep_clone", false)
	viperCfg.SetDefault("excludes", []string{})

	viperCfg.SetDefault("git.binary", "git")
	viperCfg.SetDefault("git.timeout", defaultTimeout)
	viperCfg.SetDefault("git.clean_ignored", false)

	viperCfg.SetDefault("counter.kind", "tokei")
	viperCfg.SetDefault("counter.binary", "")
	viperCfg.SetDefault("counter.timeout", defaultTimeout)

	chartDefaults := chart.DefaultOptions()
	viperCfg.SetDefault("chart.title", chartDefaults.Title)
	viperCfg.SetDefault("chart.theme", string(chartDefaults.Theme))
	viperCfg.SetDefault("chart.width", chartDefaults.Width)
	viperCfg.SetDefault("chart.height", chartDefaults.Height)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
}

// Validate 校验配置取值。命令行覆盖配置后也需要再次调用。
func (c *Config) Validate() error {
	if c.Releases <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReleases, c.Releases)
	}

	if strings.TrimSpace(c.Output) == "" {
		return ErrInvalidOutput
	}

	if !slices.Contains(counter.Kinds(), strings.ToLower(strings.TrimSpace(c.Counter.Kind))) {
		return fmt.Errorf("%w: %q", ErrUnknownCounter, c.Counter.Kind)
	}

	if _, err := chart.ParseTheme(c.Chart.Theme); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownTheme, err)
	}

	if c.Git.Timeout < 0 {
		return fmt.Errorf("%w: git.timeout=%s", ErrInvalidTimeout, c.Git.Timeout)
	}
	if c.Counter.Timeout < 0 {
		return fmt.Errorf("%w: counter.timeout=%s", ErrInvalidTimeout, c.Counter.Timeout)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	return nil
}
