package service

import "context"

// SandboxResult captures what a code run produced. Error is nil when
// the run raised nothing.
type SandboxResult struct {
	Output string
	Error  *string
}

// SandboxService executes student Python code. A real implementation
// must be an isolated, resource-bounded runner with captured
// stdout/stderr and exception text; the shipped adapter is a fixed
// stub until one exists.
type SandboxService interface {
	Run(ctx context.Context, code string) (*SandboxResult, error)
}
