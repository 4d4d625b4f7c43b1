// Package executortest provides a scripted Executor for tests.
package executortest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/slide-flow/pkg/executor"
)

// HandlerFunc produces the result of one fake command invocation.
type HandlerFunc func(ctx context.Context, name string, args []string) (executor.Result, error)

// Fake records every call and delegates to Handler.
type Fake struct {
	Handler HandlerFunc

	mu    sync.Mutex
	calls [][]string
	dirs  map[string]string
}

// New returns a Fake driven by handler.
func New(handler HandlerFunc) *Fake {
	return &Fake{Handler: handler}
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	res, err := f.Run(ctx, name, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

func (f *Fake) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.mu.Lock()
	if f.dirs == nil {
		f.dirs = make(map[string]string)
	}
	f.dirs[name] = dir
	f.mu.Unlock()
	return f.Execute(ctx, name, args...)
}

// DirOf returns the working directory of the last ExecuteInDir call to name.
func (f *Fake) DirOf(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirs[name]
}

func (f *Fake) Run(ctx context.Context, name string, args ...string) (executor.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	if f.Handler == nil {
		return executor.Result{}, nil
	}
	res, err := f.Handler(ctx, name, args)
	if err == nil && res.ExitCode != 0 {
		err = fmt.Errorf("command '%s' failed: exit status %d", name, res.ExitCode)
	}
	return res, err
}

// Calls returns a copy of every recorded invocation, command name first.
func (f *Fake) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the invocations of the named command joined as strings.
func (f *Fake) CallsTo(name string) []string {
	var out []string
	for _, c := range f.Calls() {
		if c[0] == name {
			out = append(out, strings.Join(c[1:], " "))
		}
	}
	return out
}
