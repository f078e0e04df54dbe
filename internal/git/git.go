// Package git 封装 locplot 用到的 git 子命令。
// 所有调用都通过 shell.Executor 完成，本包只负责参数拼装和输出解析。
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"locplot/internal/model"
	"locplot/internal/shell"
)

// DefaultBinary 是默认的 git 可执行文件名。
const DefaultBinary = "git"

// Client 是面向单个 git 可执行文件的命令封装。
type Client struct {
	executor shell.Executor
	binary   string
}

// NewClient 创建 git 客户端；binary 为空时使用 DefaultBinary。
func NewClient(executor shell.Executor, binary string) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Client{
		executor: executor,
		binary:   binary,
	}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	return c.executor.Run(ctx, dir, c.binary, args...)
}

// IsRepository 判断 path 下是否存在 git 元数据。
// .git 既可能是目录，也可能是 worktree/submodule 使用的 gitdir 文件。
func IsRepository(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// Clone 把 url 克隆到 dest。
func (c *Client) Clone(ctx context.Context, url string, dest string) error {
	if _, err := c.run(ctx, "", "clone", "--quiet", url, dest); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// FetchTags 拉取远端全部标签，重复执行是安全的。
func (c *Client) FetchTags(ctx context.Context, dir string) error {
	if _, err := c.run(ctx, dir, "fetch", "--tags", "--quiet"); err != nil {
		return fmt.Errorf("fetch tags: %w", err)
	}
	return nil
}

// Status 返回 `git status --short` 的原始输出，工作区干净时为空串。
func (c *Client) Status(ctx context.Context, dir string) (string, error) {
	output, err := c.run(ctx, dir, "status", "--short")
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	return output, nil
}

// CurrentBranch 返回当前检出的分支名（已去除首尾空白）。
// HEAD 处于游离状态时 symbolic-ref 会失败，错误原样向上返回。
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := c.run(ctx, dir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve current branch: %w", err)
	}

	branch := strings.TrimSpace(output)
	if branch == "" {
		return "", errors.New("resolve current branch: empty symbolic ref")
	}
	return branch, nil
}

// Tags 按版本语义（v:refname）升序列出全部标签。
func (c *Client) Tags(ctx context.Context, dir string) ([]model.Tag, error) {
	output, err := c.run(ctx, dir, "tag", "--sort", "v:refname")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	fields := strings.Fields(output)
	tags := make([]model.Tag, 0, len(fields))
	for _, field := range fields {
		tags = append(tags, model.Tag(field))
	}
	return tags, nil
}

// Checkout 检出 ref，会覆盖工作区中已跟踪文件的状态。
func (c *Client) Checkout(ctx context.Context, dir string, ref string) error {
	if _, err := c.run(ctx, dir, "checkout", "--quiet", ref, "--"); err != nil {
		return fmt.Errorf("checkout %s: %w", ref, err)
	}
	return nil
}

// Clean 删除未跟踪的文件和目录；ignored 为 true 时连同被忽略的文件一起删除。
func (c *Client) Clean(ctx context.Context, dir string, ignored bool) error {
	args := []string{"clean", "-fdq"}
	if ignored {
		args = append(args, "-x")
	}
	if _, err := c.run(ctx, dir, args...); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	return nil
}
