// Package shell 负责以子进程方式执行外部命令。
// 该层只关心命令执行、输出捕获与退出码映射，不理解 git 或计数器的语义。
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Executor 定义外部命令执行接口。
// 上层组件只依赖该接口，测试时可以替换为脚本化的假实现。
type Executor interface {
	// Run 在 dir 目录执行 name args...，返回标准输出原文。
	// dir 为空表示使用当前工作目录。
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// ExecutionError 表示外部命令以非零状态退出（或根本无法启动）。
type ExecutionError struct {
	Command  []string
	Dir      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	line := strings.Join(e.Command, " ")
	if e.Stderr != "" {
		return fmt.Sprintf("error executing `%s` (exit code %d): %s", line, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("error executing `%s` (exit code %d)", line, e.ExitCode)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// CommandLine 返回失败命令的完整命令行。
func (e *ExecutionError) CommandLine() string {
	return strings.Join(e.Command, " ")
}

// Subprocess 是基于 os/exec 的 Executor 实现。
type Subprocess struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewSubprocess 创建执行器。
// timeout <= 0 表示不设超时；logger 为 nil 时使用 slog 默认 logger。
func NewSubprocess(timeout time.Duration, logger *slog.Logger) *Subprocess {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subprocess{
		timeout: timeout,
		logger:  logger,
	}
}

// Run 执行命令并等待结束。每次调用只尝试一次，不做重试。
func (s *Subprocess) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	command := append([]string{name}, args...)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug("running subprocess", "cmd", strings.Join(command, " "), "dir", dir)
	started := time.Now()

	runErr := cmd.Run()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	s.logger.Debug("subprocess exited", "code", exitCode, "elapsed", time.Since(started))

	if runErr != nil {
		err := runErr
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, runErr)
		}
		return stdout.String(), &ExecutionError{
			Command:  command,
			Dir:      dir,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return stdout.String(), nil
}
