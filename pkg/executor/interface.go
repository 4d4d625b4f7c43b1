package executor

import (
	"context"
	"errors"
)

var (
	// ErrCommandNotFound is returned when the executable cannot be located or started.
	ErrCommandNotFound = errors.New("command not found")
	// ErrTimeout is returned when the context deadline expires before the command exits.
	ErrTimeout = errors.New("command timed out")
)

// Result holds everything a finished command produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// Run returns the captured output even when the command exits non-zero.
	Run(ctx context.Context, name string, args ...string) (Result, error)
}
