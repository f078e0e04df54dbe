// Package repo 负责把用户给出的仓库引用解析为一份可独占修改的本地工作副本。
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"locplot/internal/git"
)

var (
	// ErrNotARepository 表示引用既不是 URL，也不是带 .git 元数据的本地目录。
	ErrNotARepository = errors.New("can't find git repository")
	// ErrUncommittedChanges 表示原地复用的本地仓库存在未提交改动。
	ErrUncommittedChanges = errors.New("found uncommitted changes")
	// ErrDetachedHead 表示工作副本不在具名分支上，无法记录需要恢复的 ref。
	ErrDetachedHead = errors.New("working copy is not on a named branch")
)

// Handle 表示一次运行期间对工作副本的独占持有。
// 运行结束时（无论成功失败）必须调用 Release 恢复 OriginalRef。
type Handle struct {
	Path        string
	OriginalRef string
	Temporary   bool

	client    *git.Client
	keepClone bool
	released  bool
	logger    *slog.Logger
}

// Release 恢复原始 ref，并在需要时删除临时克隆目录。重复调用只生效一次。
// 恢复使用脱离取消信号的 context，保证被中断的运行依然能完成恢复。
func (h *Handle) Release(ctx context.Context) error {
	if h.released {
		return nil
	}
	h.released = true

	ctx = context.WithoutCancel(ctx)

	var errs []error
	if err := h.client.Checkout(ctx, h.Path, h.OriginalRef); err != nil {
		errs = append(errs, fmt.Errorf("restore %s: %w", h.OriginalRef, err))
	} else {
		h.logger.Debug("restored original ref", "path", h.Path, "ref", h.OriginalRef)
	}

	if h.Temporary && !h.keepClone {
		if err := os.RemoveAll(h.Path); err != nil {
			errs = append(errs, fmt.Errorf("remove temporary clone: %w", err))
		} else {
			h.logger.Debug("removed temporary clone", "path", h.Path)
		}
	}

	return errors.Join(errs...)
}

// Released 报告 Release 是否已经执行过。
func (h *Handle) Released() bool {
	return h.released
}

// Options 控制 Bootstrapper 的行为。
type Options struct {
	// KeepClone 为 true 时保留从 URL 克隆出的临时目录，便于事后检查。
	KeepClone bool
	// TempDir 是临时克隆的父目录，为空时使用系统临时目录。
	TempDir string
}

// Bootstrapper 把引用解析为 Handle。
type Bootstrapper struct {
	client  *git.Client
	options Options
	logger  *slog.Logger
}

// NewBootstrapper 创建 Bootstrapper。
func NewBootstrapper(client *git.Client, options Options, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{
		client:  client,
		options: options,
		logger:  logger,
	}
}

// Bootstrap 解析 reference 并返回一个已拉取标签、已记录原始分支的工作副本。
//
// 规则：
// - 带 scheme 的 URL：克隆到新的临时目录
// - 含 .git 的本地目录：原地使用，但工作区必须完全干净
// - 其它：ErrNotARepository
func (b *Bootstrapper) Bootstrap(ctx context.Context, reference string) (*Handle, error) {
	handle := &Handle{
		client:    b.client,
		keepClone: b.options.KeepClone,
		logger:    b.logger,
	}

	switch {
	case IsURL(reference):
		path, err := os.MkdirTemp(b.options.TempDir, "locplot-")
		if err != nil {
			return nil, fmt.Errorf("create temporary directory: %w", err)
		}

		b.logger.Info("cloning repository", "url", reference, "path", path)
		if err := b.client.Clone(ctx, reference, path); err != nil {
			b.discard(path)
			return nil, err
		}

		handle.Path = path
		handle.Temporary = true
	case git.IsRepository(reference):
		path, err := filepath.Abs(reference)
		if err != nil {
			return nil, fmt.Errorf("resolve absolute path: %w", err)
		}

		status, err := b.client.Status(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(status) > 0 {
			return nil, fmt.Errorf("%w in %s", ErrUncommittedChanges, path)
		}

		handle.Path = path
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, reference)
	}

	if err := b.client.FetchTags(ctx, handle.Path); err != nil {
		b.abandon(handle)
		return nil, err
	}

	branch, err := b.client.CurrentBranch(ctx, handle.Path)
	if err != nil {
		b.abandon(handle)
		return nil, fmt.Errorf("%w: %w", ErrDetachedHead, err)
	}
	handle.OriginalRef = branch

	b.logger.Debug("bootstrapped working copy",
		"path", handle.Path,
		"ref", handle.OriginalRef,
		"temporary", handle.Temporary,
	)
	return handle, nil
}

// abandon 在引导中途失败时清理我们自己创建的临时克隆；原地复用的仓库保持不动。
func (b *Bootstrapper) abandon(handle *Handle) {
	if handle.Temporary && !b.options.KeepClone {
		b.discard(handle.Path)
	}
}

func (b *Bootstrapper) discard(path string) {
	if err := os.RemoveAll(path); err != nil {
		b.logger.Warn("failed to remove temporary directory", "path", path, "error", err)
	}
}

// IsURL 判断 reference 是否带有非空 scheme。
// 单字母 scheme 视为 Windows 盘符（C:\repo），按本地路径处理。
func IsURL(reference string) bool {
	parsed, err := url.Parse(reference)
	if err != nil {
		return false
	}
	return len(parsed.Scheme) > 1
}
