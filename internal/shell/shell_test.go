package shell

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

// TestRunCapturesStdout 验证标准输出被完整返回且工作目录生效。
func TestRunCapturesStdout(t *testing.T) {
	requireBinary(t, "sh")

	dir := t.TempDir()
	executor := NewSubprocess(0, nil)

	output, err := executor.Run(context.Background(), dir, "sh", "-c", "printf 'hello\\n'; pwd")
	require.NoError(t, err)
	assert.Contains(t, output, "hello\n")
	assert.Contains(t, output, dir)
}

// TestRunNonZeroExit 验证非零退出码映射为 ExecutionError，并带上命令行和 stderr。
func TestRunNonZeroExit(t *testing.T) {
	requireBinary(t, "sh")

	executor := NewSubprocess(0, nil)
	_, err := executor.Run(context.Background(), "", "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Equal(t, "broken", execErr.Stderr)
	assert.Equal(t, "sh -c echo broken >&2; exit 3", execErr.CommandLine())
	assert.Contains(t, err.Error(), "exit code 3")
}

// TestRunMissingBinary 验证无法启动的命令同样是 ExecutionError。
func TestRunMissingBinary(t *testing.T) {
	executor := NewSubprocess(0, nil)
	_, err := executor.Run(context.Background(), "", "locplot-definitely-not-installed")

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, -1, execErr.ExitCode)
}

// TestRunTimeout 验证超时会终止子进程，并可以通过 errors.Is 识别。
func TestRunTimeout(t *testing.T) {
	requireBinary(t, "sleep")

	executor := NewSubprocess(50*time.Millisecond, nil)
	_, err := executor.Run(context.Background(), "", "sleep", "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
