package sandbox

import (
	"context"

	"github.com/pybotlabs/pybot-api/internal/application/service"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

// stubRunner is the placeholder until a real isolated interpreter
// exists. It returns the same output for every input and never fails.
// TODO: replace with a Pyodide-backed runner with CPU/memory/time
// limits and captured stdout/stderr.
type stubRunner struct {
	log logger.Logger
}

func NewStubRunner(log logger.Logger) service.SandboxService {
	return &stubRunner{log: log}
}

func (r *stubRunner) Run(ctx context.Context, code string) (*service.SandboxResult, error) {
	return &service.SandboxResult{
		Output: "Hello from Python!",
		Error:  nil,
	}, nil
}
