package execute

import (
	"context"

	"github.com/google/uuid"

	"github.com/pybotlabs/pybot-api/internal/application/service"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
)

type ExecuteUseCase struct {
	sandbox service.SandboxService
}

func NewExecuteUseCase(sandbox service.SandboxService) *ExecuteUseCase {
	return &ExecuteUseCase{sandbox: sandbox}
}

type ExecuteInput struct {
	SubjectID uuid.UUID
	Code      string
}

type ExecuteOutput struct {
	Output string
	Error  *string
}

func (uc *ExecuteUseCase) Execute(ctx context.Context, input ExecuteInput) (*ExecuteOutput, error) {
	result, err := uc.sandbox.Run(ctx, input.Code)
	if err != nil {
		return nil, apperror.NewUpstream("code sandbox", err)
	}
	return &ExecuteOutput{Output: result.Output, Error: result.Error}, nil
}
