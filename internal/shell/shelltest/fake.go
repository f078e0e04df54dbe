// Package shelltest 提供 shell.Executor 的测试替身。
package shelltest

import (
	"context"
	"strings"
	"sync"
)

// Call 记录一次命令调用。
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line 返回不含目录的命令行，便于断言。
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake 记录全部调用，并把结果交给 Handler 决定。
// Handler 为 nil 时所有命令返回空输出且成功。
type Fake struct {
	Handler func(call Call) (string, error)

	mu    sync.Mutex
	calls []Call
}

// Run 实现 shell.Executor。
func (f *Fake) Run(_ context.Context, dir string, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return "", nil
	}
	return f.Handler(call)
}

// Calls 返回调用记录的副本。
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines 返回全部调用的命令行。
func (f *Fake) Lines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, call := range calls {
		lines[i] = call.Line()
	}
	return lines
}
