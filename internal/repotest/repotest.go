// Package repotest 在临时目录中构造真实的 git 仓库，供集成测试使用。
package repotest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"locplot/internal/shell"
)

// RequireGit 在 PATH 中找不到 git 时跳过测试。
func RequireGit(t testing.TB) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}
}

// Run 在 dir 中执行 git 命令，失败时直接终止测试。
func Run(t testing.TB, dir string, args ...string) string {
	t.Helper()

	output, err := shell.NewSubprocess(0, nil).Run(context.Background(), dir, "git", args...)
	if err != nil {
		t.Fatalf("git %s failed: %v", strings.Join(args, " "), err)
	}
	return output
}

// Init 创建一个位于 main 分支、带本地身份配置的空仓库。
func Init(t testing.TB) string {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	Run(t, dir, "init", "--quiet")
	Run(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	Run(t, dir, "config", "user.email", "locplot@example.com")
	Run(t, dir, "config", "user.name", "locplot")
	Run(t, dir, "config", "commit.gpgsign", "false")
	Run(t, dir, "config", "tag.gpgsign", "false")
	return dir
}

// WriteFiles 写入一组相对路径文件。
func WriteFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir fixture dir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture file failed: %v", err)
		}
	}
}

// Commit 写入文件并提交全部改动。
func Commit(t testing.TB, dir string, files map[string]string, message string) {
	t.Helper()

	WriteFiles(t, dir, files)
	Run(t, dir, "add", "--all")
	Run(t, dir, "commit", "--quiet", "-m", message)
}

// Tag 在当前 HEAD 上创建轻量标签。
func Tag(t testing.TB, dir string, name string) {
	t.Helper()
	Run(t, dir, "tag", name)
}

// Branch 返回当前分支名。
func Branch(t testing.TB, dir string) string {
	t.Helper()
	return strings.TrimSpace(Run(t, dir, "symbolic-ref", "--short", "HEAD"))
}

// Status 返回 `git status --short` 输出。
func Status(t testing.TB, dir string) string {
	t.Helper()
	return Run(t, dir, "status", "--short")
}

// Clone 把 source 克隆到新的临时目录，得到一个带 origin 远端、可以 fetch 的工作副本。
func Clone(t testing.TB, source string) string {
	t.Helper()

	dir := t.TempDir()
	Run(t, dir, "clone", "--quiet", source, ".")
	return dir
}
